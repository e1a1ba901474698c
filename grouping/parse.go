package grouping

import (
	"errors"
	"fmt"

	tok "github.com/shibukawa/sqltree/tokenizer"
)

// Sentinel errors
var (
	ErrUnmatchedCloseParenthesis = errors.New("unmatched close parenthesis")
	ErrUnmatchedOpenParenthesis  = errors.New("unmatched open parenthesis")
)

// Parse tokenizes sql, splits it into statements at top level semicolons and
// groups every statement into a token tree. Statements consisting only of
// whitespace and comments are dropped, so blank input returns no statements.
func Parse(sql string) ([]*Statement, error) {
	tokens, err := tok.Tokenize(sql)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize SQL: %w", err)
	}

	if err := validateParentheses(tokens); err != nil {
		return nil, err
	}

	var statements []*Statement

	for _, chunk := range splitStatements(tokens) {
		if !hasSignificant(chunk) {
			continue
		}

		statements = append(statements, &Statement{Tokens: groupParentheses(chunk)})
	}

	return statements, nil
}

// validateParentheses checks that all parentheses are properly matched.
func validateParentheses(tokens []tok.Token) error {
	var stack []tok.Token

	for _, t := range tokens {
		switch t.Type {
		case tok.OPENED_PARENS:
			stack = append(stack, t)
		case tok.CLOSED_PARENS:
			if len(stack) == 0 {
				return fmt.Errorf("%w at %s", ErrUnmatchedCloseParenthesis, t.Position)
			}

			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return fmt.Errorf("%w at %s", ErrUnmatchedOpenParenthesis, stack[len(stack)-1].Position)
	}

	return nil
}

// splitStatements cuts after every semicolon outside parentheses.
// The semicolon stays with the statement it terminates.
func splitStatements(tokens []tok.Token) [][]*Token {
	var (
		result  [][]*Token
		current []*Token
		nest    int
	)

	for _, t := range tokens {
		current = append(current, newLeaf(t))

		switch t.Type {
		case tok.OPENED_PARENS:
			nest++
		case tok.CLOSED_PARENS:
			nest--
		case tok.SEMICOLON:
			if nest == 0 {
				result = append(result, current)
				current = nil
			}
		}
	}

	if len(current) > 0 {
		result = append(result, current)
	}

	return result
}

func hasSignificant(tokens []*Token) bool {
	for _, t := range tokens {
		if !t.IsSpace() {
			return true
		}
	}

	return false
}

// groupParentheses builds Parenthesis groups bottom-up and runs the grouping
// rules on every parenthesis body and finally on the statement itself.
// Parentheses must already be balanced.
func groupParentheses(tokens []*Token) []*Token {
	stack := [][]*Token{nil}

	for _, t := range tokens {
		switch t.Type {
		case tok.OPENED_PARENS:
			stack = append(stack, []*Token{t})
		case tok.CLOSED_PARENS:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			members := make([]*Token, 0, len(top)+1)
			members = append(members, top[0])
			members = append(members, groupTokens(top[1:])...)
			members = append(members, t)

			stack[len(stack)-1] = append(stack[len(stack)-1], newGroup(Parenthesis, members))
		default:
			stack[len(stack)-1] = append(stack[len(stack)-1], t)
		}
	}

	return groupTokens(stack[0])
}
