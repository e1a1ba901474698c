package tree

import (
	"fmt"

	"github.com/shibukawa/sqltree/grouping"
	tok "github.com/shibukawa/sqltree/tokenizer"
)

// Kind is the closed set of token categories that appear in exported trees.
type Kind int

const (
	// Leaf kinds
	Keyword Kind = iota
	DML
	DDL
	CTE
	Name
	Wildcard
	String
	Number
	Operator
	ComparisonOperator
	Punctuation
	Comment
	Whitespace
	Placeholder
	Unknown

	// Group kinds
	Statement
	Parenthesis
	Subselect
	Function
	Identifier
	IdentifierList
	Comparison
	Operation
	Where
	Case
)

var kindNames = map[Kind]string{
	Keyword:            "Keyword",
	DML:                "DML",
	DDL:                "DDL",
	CTE:                "CTE",
	Name:               "Name",
	Wildcard:           "Wildcard",
	String:             "String",
	Number:             "Number",
	Operator:           "Operator",
	ComparisonOperator: "ComparisonOperator",
	Punctuation:        "Punctuation",
	Comment:            "Comment",
	Whitespace:         "Whitespace",
	Placeholder:        "Placeholder",
	Unknown:            "Unknown",
	Statement:          "Statement",
	Parenthesis:        "Parenthesis",
	Subselect:          "Subselect",
	Function:           "Function",
	Identifier:         "Identifier",
	IdentifierList:     "IdentifierList",
	Comparison:         "Comparison",
	Operation:          "Operation",
	Where:              "Where",
	Case:               "Case",
}

var kindsByName = func() map[string]Kind {
	result := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		result[name] = k
	}

	return result
}()

// String returns the type tag used in exported trees
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// IsGroup reports whether tokens of this kind own nested tokens.
func (k Kind) IsGroup() bool {
	return k >= Statement && k <= Case
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	result := make([]Kind, 0, Case+1)
	for k := Keyword; k <= Case; k++ {
		result = append(result, k)
	}

	return result
}

func leafKind(t tok.TokenType) Kind {
	switch t {
	case tok.SELECT, tok.INSERT, tok.UPDATE, tok.DELETE:
		return DML
	case tok.CREATE, tok.ALTER, tok.DROP:
		return DDL
	case tok.WITH:
		return CTE
	case tok.IDENTIFIER, tok.QUOTED_IDENTIFIER:
		return Name
	case tok.WILDCARD:
		return Wildcard
	case tok.STRING:
		return String
	case tok.NUMBER:
		return Number
	case tok.PLACEHOLDER:
		return Placeholder
	case tok.WHITESPACE:
		return Whitespace
	case tok.LINE_COMMENT, tok.BLOCK_COMMENT:
		return Comment
	case tok.OPENED_PARENS, tok.CLOSED_PARENS, tok.COMMA, tok.SEMICOLON, tok.DOT:
		return Punctuation
	case tok.PLUS, tok.MINUS, tok.MULTIPLY, tok.DIVIDE, tok.MODULO, tok.CONCAT, tok.DOUBLE_COLON:
		return Operator
	}

	if t.IsComparison() {
		return ComparisonOperator
	}

	if t.IsKeyword() {
		return Keyword
	}

	return Unknown
}

func groupKind(g grouping.GroupType) Kind {
	switch g {
	case grouping.StatementGroup:
		return Statement
	case grouping.Parenthesis:
		return Parenthesis
	case grouping.Function:
		return Function
	case grouping.Identifier:
		return Identifier
	case grouping.IdentifierList:
		return IdentifierList
	case grouping.Comparison:
		return Comparison
	case grouping.Operation:
		return Operation
	case grouping.Where:
		return Where
	case grouping.Case:
		return Case
	default:
		// a leaf kind here would drop the children of the group on export
		panic(fmt.Sprintf("tree: no kind for group type %s", g))
	}
}
