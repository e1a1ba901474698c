package grouping

import (
	"iter"
	"strings"

	tok "github.com/shibukawa/sqltree/tokenizer"
)

// GroupType tells which construct a group token stands for. Leaves use NotGroup.
type GroupType int

const (
	NotGroup GroupType = iota
	StatementGroup
	Parenthesis
	Function
	Identifier
	IdentifierList
	Comparison
	Operation
	Where
	Case
)

// String returns the string representation of GroupType
func (g GroupType) String() string {
	switch g {
	case NotGroup:
		return "NotGroup"
	case StatementGroup:
		return "Statement"
	case Parenthesis:
		return "Parenthesis"
	case Function:
		return "Function"
	case Identifier:
		return "Identifier"
	case IdentifierList:
		return "IdentifierList"
	case Comparison:
		return "Comparison"
	case Operation:
		return "Operation"
	case Where:
		return "Where"
	case Case:
		return "Case"
	default:
		return "UNKNOWN"
	}
}

// Token is either a lexical leaf or a group that owns a nested token list.
type Token struct {
	Type     tok.TokenType // lexical type, meaningful for leaves only
	Group    GroupType
	Value    string // raw source text
	Position tok.Position
	Tokens   []*Token // children, nil for leaves
}

func newLeaf(t tok.Token) *Token {
	return &Token{
		Type:     t.Type,
		Value:    t.Value,
		Position: t.Position,
	}
}

func newGroup(group GroupType, tokens []*Token) *Token {
	children := make([]*Token, len(tokens))
	copy(children, tokens)

	result := &Token{
		Type:   tok.OTHER,
		Group:  group,
		Tokens: children,
		Value:  joinValues(children),
	}

	if len(children) > 0 {
		result.Position = children[0].Position
	}

	return result
}

// IsGroup reports whether the token owns a nested token list.
func (t *Token) IsGroup() bool {
	return t.Group != NotGroup
}

// IsSpace reports whether the token is whitespace or a comment.
func (t *Token) IsSpace() bool {
	if t.IsGroup() {
		return false
	}

	switch t.Type {
	case tok.WHITESPACE, tok.LINE_COMMENT, tok.BLOCK_COMMENT:
		return true
	}

	return false
}

// Is reports whether the token is a leaf of one of the given types.
func (t *Token) Is(types ...tok.TokenType) bool {
	if t.IsGroup() {
		return false
	}

	for _, tt := range types {
		if t.Type == tt {
			return true
		}
	}

	return false
}

// Normalized returns keywords upper-cased and everything else as written.
func (t *Token) Normalized() string {
	if !t.IsGroup() && t.Type.IsKeyword() {
		return strings.ToUpper(t.Value)
	}

	return t.Value
}

// Flatten yields the leaves below t in source order.
func (t *Token) Flatten() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		flatten(t, yield)
	}
}

// FirstSignificant returns the first child that is neither whitespace nor comment.
func (t *Token) FirstSignificant() *Token {
	for _, child := range t.Tokens {
		if !child.IsSpace() {
			return child
		}
	}

	return nil
}

func (t *Token) String() string {
	if t.IsGroup() {
		return t.Group.String() + ": " + t.Value
	}

	return t.Type.String() + ": " + t.Value
}

func flatten(t *Token, yield func(*Token) bool) bool {
	if !t.IsGroup() {
		return yield(t)
	}

	for _, child := range t.Tokens {
		if !flatten(child, yield) {
			return false
		}
	}

	return true
}

func joinValues(tokens []*Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Value)
	}

	return sb.String()
}

// Statement is one SQL statement: the top level token list.
type Statement struct {
	Tokens []*Token
}

// Value returns the source text of the statement.
func (s *Statement) Value() string {
	return joinValues(s.Tokens)
}

// Flatten yields all leaves of the statement in source order.
func (s *Statement) Flatten() iter.Seq[*Token] {
	return newGroup(StatementGroup, s.Tokens).Flatten()
}
