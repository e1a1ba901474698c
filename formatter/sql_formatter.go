package formatter

import (
	"errors"
	"fmt"
	"strings"

	tok "github.com/shibukawa/sqltree/tokenizer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinel errors
var (
	ErrUnmatchedCloseParenthesis = errors.New("unmatched close parenthesis")
	ErrUnmatchedOpenParenthesis  = errors.New("unmatched open parenthesis")
	ErrInvalidKeywordCase        = errors.New("invalid keyword case")
)

// KeywordCase selects how keywords are spelled in the output.
type KeywordCase string

const (
	Preserve   KeywordCase = "preserve"
	Upper      KeywordCase = "upper"
	Lower      KeywordCase = "lower"
	Capitalize KeywordCase = "capitalize"
)

// ParseKeywordCase accepts the names above, case-insensitively. An empty
// string means Preserve.
func ParseKeywordCase(s string) (KeywordCase, error) {
	switch kc := KeywordCase(strings.ToLower(s)); kc {
	case "":
		return Preserve, nil
	case Preserve, Upper, Lower, Capitalize:
		return kc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKeywordCase, s)
	}
}

// Options controls the SQL formatter.
type Options struct {
	// Reindent starts every top level clause on its own line and puts
	// AND/OR of a WHERE clause on indented lines. It implies StripWhitespace.
	Reindent    bool
	KeywordCase KeywordCase
	// StripWhitespace collapses whitespace runs into a single space.
	StripWhitespace bool
	IndentWidth     int
}

// DefaultOptions is the configuration used for query normalization.
func DefaultOptions() Options {
	return Options{
		Reindent:        true,
		KeywordCase:     Upper,
		StripWhitespace: true,
		IndentWidth:     2,
	}
}

// SQLFormatter formats SQL text
type SQLFormatter struct {
	options Options
	caser   *cases.Caser
}

// NewSQLFormatter creates a new SQL formatter. Without options DefaultOptions is used.
func NewSQLFormatter(options ...Options) *SQLFormatter {
	opts := DefaultOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	f := &SQLFormatter{options: opts}

	var caser cases.Caser

	switch opts.KeywordCase {
	case Upper:
		caser = cases.Upper(language.Und)
	case Lower:
		caser = cases.Lower(language.Und)
	case Capitalize:
		caser = cases.Title(language.Und)
	default:
		return f
	}

	f.caser = &caser

	return f
}

// Format is a shortcut for NewSQLFormatter(options).Format(sql).
func Format(sql string, options Options) (string, error) {
	return NewSQLFormatter(options).Format(sql)
}

// Format formats sql. Tokenizer errors and unbalanced parentheses are
// reported; the input is never partially formatted.
func (f *SQLFormatter) Format(sql string) (string, error) {
	tokens, err := tok.Tokenize(sql)
	if err != nil {
		return "", fmt.Errorf("failed to tokenize SQL: %w", err)
	}

	if err := validateParentheses(tokens); err != nil {
		return "", err
	}

	if !f.options.Reindent && !f.options.StripWhitespace {
		return f.formatPreserving(tokens), nil
	}

	return f.formatTokens(tokens), nil
}

// formatPreserving only changes keyword case.
func (f *SQLFormatter) formatPreserving(tokens []tok.Token) string {
	var result strings.Builder

	for _, token := range tokens {
		result.WriteString(f.text(token))
	}

	return result.String()
}

// formatTokens formats the tokens according to the style rules
func (f *SQLFormatter) formatTokens(tokens []tok.Token) string {
	var (
		result        strings.Builder
		last          *tok.Token // last emitted non-whitespace token
		pending       string
		depth         int
		inWhere       bool
		betweenOpened bool
	)

	indent := strings.Repeat(" ", max(f.options.IndentWidth, 0))

	for i := range tokens {
		token := tokens[i]

		if token.Type == tok.WHITESPACE {
			if pending == "" {
				pending = " "
			}

			continue
		}

		if token.Type == tok.CLOSED_PARENS {
			depth--
		}

		sep := pending

		switch {
		case last == nil:
			sep = ""
		case last.Type == tok.LINE_COMMENT:
			sep = "\n"
		case token.Type == tok.COMMA || token.Type == tok.CLOSED_PARENS || token.Type == tok.SEMICOLON || token.Type == tok.DOT:
			sep = ""
		case last.Type == tok.OPENED_PARENS || last.Type == tok.DOT:
			sep = ""
		case last.Type == tok.COMMA:
			sep = " "
		}

		if f.options.Reindent && depth == 0 && last != nil {
			switch {
			case last.Type == tok.SEMICOLON:
				sep = "\n\n"
				inWhere = false
			case isClauseStart(last, token):
				sep = "\n"
				inWhere = token.Type == tok.WHERE
			case inWhere && token.Type == tok.BETWEEN:
				betweenOpened = true
			case inWhere && token.Type == tok.AND && betweenOpened:
				betweenOpened = false
			case inWhere && (token.Type == tok.AND || token.Type == tok.OR):
				sep = "\n" + indent
			}
		}

		result.WriteString(sep)
		result.WriteString(f.text(token))

		if token.Type == tok.OPENED_PARENS {
			depth++
		}

		last = &tokens[i]
		pending = ""
	}

	return strings.TrimSpace(result.String())
}

func (f *SQLFormatter) text(token tok.Token) string {
	if f.caser != nil && token.Type.IsKeyword() {
		return f.caser.String(token.Value)
	}

	return token.Value
}

var clauseKeywords = map[tok.TokenType]bool{
	tok.SELECT: true, tok.FROM: true, tok.WHERE: true, tok.GROUP: true, tok.ORDER: true,
	tok.HAVING: true, tok.LIMIT: true, tok.OFFSET: true, tok.UNION: true, tok.EXCEPT: true,
	tok.INTERSECT: true, tok.SET: true, tok.VALUES: true, tok.RETURNING: true, tok.JOIN: true,
}

var joinModifiers = map[string]bool{
	"LEFT": true, "RIGHT": true, "INNER": true, "FULL": true, "CROSS": true, "NATURAL": true, "OUTER": true,
}

func isJoinModifier(token *tok.Token) bool {
	return token.Type == tok.RESERVED_IDENTIFIER && joinModifiers[strings.ToUpper(token.Value)]
}

// isClauseStart reports whether token opens a new top level clause.
func isClauseStart(last *tok.Token, token tok.Token) bool {
	switch {
	case isJoinModifier(&token):
		return !isJoinModifier(last)
	case token.Type == tok.JOIN:
		return !isJoinModifier(last)
	case token.Type == tok.SELECT:
		// UNION ALL SELECT, INSERT INTO t SELECT
		return last.Type != tok.OPENED_PARENS
	}

	return clauseKeywords[token.Type]
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
