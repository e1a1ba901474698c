package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnterminatedString     = errors.New("unterminated string literal")
	ErrUnterminatedIdentifier = errors.New("unterminated quoted identifier")
	ErrUnterminatedComment    = errors.New("unterminated block comment")
	ErrInvalidNumber          = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	IDENTIFIER          // unquoted names
	QUOTED_IDENTIFIER   // "name", `name`
	RESERVED_IDENTIFIER // reserved words without a dedicated type
	STRING              // 'text'
	NUMBER              // numeric literals
	BOOLEAN             // TRUE, FALSE
	PLACEHOLDER         // ?, $1, :name
	OPENED_PARENS       // (
	CLOSED_PARENS       // )
	COMMA               // ,
	SEMICOLON           // ;
	DOT                 // .

	// SQL operators
	EQUAL         // =
	NOT_EQUAL     // <>, !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
	PLUS          // +
	MINUS         // -
	MULTIPLY      // *
	DIVIDE        // /
	MODULO        // %
	CONCAT        // ||
	DOUBLE_COLON  // ::

	// WILDCARD is never produced by the scanner. The grouping stage
	// reclassifies a MULTIPLY that stands for "all columns".
	WILDCARD

	// Statement keywords
	SELECT
	INSERT
	UPDATE
	DELETE
	CREATE
	ALTER
	DROP
	WITH

	// Clause keywords
	FROM
	WHERE
	GROUP
	ORDER
	BY
	HAVING
	LIMIT
	OFFSET
	UNION
	EXCEPT
	INTERSECT
	ALL
	DISTINCT
	AS
	INTO
	VALUES
	SET
	RETURNING
	JOIN
	ON
	USING

	// Logical operators and conditional expressions
	AND
	OR
	NOT
	IN
	EXISTS
	BETWEEN
	LIKE
	IS
	NULL
	CASE
	WHEN
	THEN
	ELSE
	END

	// Comments
	LINE_COMMENT  // -- line comment
	BLOCK_COMMENT // /* block comment */

	// Others
	OTHER
)

var tokenTypeNames = map[TokenType]string{
	EOF:                 "EOF",
	WHITESPACE:          "WHITESPACE",
	IDENTIFIER:          "IDENTIFIER",
	QUOTED_IDENTIFIER:   "QUOTED_IDENTIFIER",
	RESERVED_IDENTIFIER: "RESERVED_IDENTIFIER",
	STRING:              "STRING",
	NUMBER:              "NUMBER",
	BOOLEAN:             "BOOLEAN",
	PLACEHOLDER:         "PLACEHOLDER",
	OPENED_PARENS:       "OPENED_PARENS",
	CLOSED_PARENS:       "CLOSED_PARENS",
	COMMA:               "COMMA",
	SEMICOLON:           "SEMICOLON",
	DOT:                 "DOT",
	EQUAL:               "EQUAL",
	NOT_EQUAL:           "NOT_EQUAL",
	LESS_THAN:           "LESS_THAN",
	GREATER_THAN:        "GREATER_THAN",
	LESS_EQUAL:          "LESS_EQUAL",
	GREATER_EQUAL:       "GREATER_EQUAL",
	PLUS:                "PLUS",
	MINUS:               "MINUS",
	MULTIPLY:            "MULTIPLY",
	DIVIDE:              "DIVIDE",
	MODULO:              "MODULO",
	CONCAT:              "CONCAT",
	DOUBLE_COLON:        "DOUBLE_COLON",
	WILDCARD:            "WILDCARD",
	SELECT:              "SELECT",
	INSERT:              "INSERT",
	UPDATE:              "UPDATE",
	DELETE:              "DELETE",
	CREATE:              "CREATE",
	ALTER:               "ALTER",
	DROP:                "DROP",
	WITH:                "WITH",
	FROM:                "FROM",
	WHERE:               "WHERE",
	GROUP:               "GROUP",
	ORDER:               "ORDER",
	BY:                  "BY",
	HAVING:              "HAVING",
	LIMIT:               "LIMIT",
	OFFSET:              "OFFSET",
	UNION:               "UNION",
	EXCEPT:              "EXCEPT",
	INTERSECT:           "INTERSECT",
	ALL:                 "ALL",
	DISTINCT:            "DISTINCT",
	AS:                  "AS",
	INTO:                "INTO",
	VALUES:              "VALUES",
	SET:                 "SET",
	RETURNING:           "RETURNING",
	JOIN:                "JOIN",
	ON:                  "ON",
	USING:               "USING",
	AND:                 "AND",
	OR:                  "OR",
	NOT:                 "NOT",
	IN:                  "IN",
	EXISTS:              "EXISTS",
	BETWEEN:             "BETWEEN",
	LIKE:                "LIKE",
	IS:                  "IS",
	NULL:                "NULL",
	CASE:                "CASE",
	WHEN:                "WHEN",
	THEN:                "THEN",
	ELSE:                "ELSE",
	END:                 "END",
	LINE_COMMENT:        "LINE_COMMENT",
	BLOCK_COMMENT:       "BLOCK_COMMENT",
	OTHER:               "OTHER",
}

// String returns the string representation of TokenType
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// IsKeyword reports whether the type is a reserved word.
func (t TokenType) IsKeyword() bool {
	return t == RESERVED_IDENTIFIER || t == BOOLEAN || (t >= SELECT && t <= END)
}

// IsComparison reports whether the type compares two operands.
func (t TokenType) IsComparison() bool {
	switch t {
	case EQUAL, NOT_EQUAL, LESS_THAN, GREATER_THAN, LESS_EQUAL, GREATER_EQUAL, LIKE:
		return true
	}

	return false
}

// IsArithmetic reports whether the type is a binary value operator.
func (t TokenType) IsArithmetic() bool {
	switch t {
	case PLUS, MINUS, MULTIPLY, DIVIDE, MODULO, CONCAT:
		return true
	}

	return false
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
