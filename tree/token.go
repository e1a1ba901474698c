package tree

import (
	"github.com/shibukawa/sqltree/grouping"
	tok "github.com/shibukawa/sqltree/tokenizer"
)

// Token is a leaf or a group of the SQL token tree. Leaves carry their
// normalized text, groups the raw text they cover.
type Token struct {
	Kind   Kind
	Text   string
	Tokens []*Token // non-nil for groups, nil for leaves
}

// IsGroup reports whether the token owns a nested token sequence.
func (t *Token) IsGroup() bool {
	return t.Kind.IsGroup()
}

func (t *Token) String() string {
	return t.Kind.String() + ": " + t.Text
}

// FirstSignificant returns the first child that is neither whitespace nor comment.
func (t *Token) FirstSignificant() *Token {
	for _, child := range t.Tokens {
		if child.Kind != Whitespace && child.Kind != Comment {
			return child
		}
	}

	return nil
}

// FromGrouping converts grouped tokens into tree tokens.
func FromGrouping(tokens []*grouping.Token) []*Token {
	result := make([]*Token, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, convert(t))
	}

	return result
}

// FromStatement converts the top level tokens of a statement.
func FromStatement(stmt *grouping.Statement) []*Token {
	return FromGrouping(stmt.Tokens)
}

func convert(t *grouping.Token) *Token {
	if !t.IsGroup() {
		return &Token{
			Kind: leafKind(t.Type),
			Text: t.Normalized(),
		}
	}

	result := &Token{
		Kind:   groupKind(t.Group),
		Text:   t.Value,
		Tokens: FromGrouping(t.Tokens),
	}

	if result.Kind == Parenthesis && opensSubselect(t) {
		result.Kind = Subselect
	}

	return result
}

// opensSubselect reports whether the first token inside the parentheses
// starts a query.
func opensSubselect(paren *grouping.Token) bool {
	for _, child := range paren.Tokens {
		if child.IsSpace() || child.Is(tok.OPENED_PARENS) {
			continue
		}

		return child.Is(tok.SELECT, tok.WITH)
	}

	return false
}
