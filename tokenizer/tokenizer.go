package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// SqlTokenizer is a tokenizer that returns an iterator
type SqlTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
	// UpperCase upper-cases keywords and identifiers in Token.Value.
	UpperCase bool
}

// NewSqlTokenizer creates a new SqlTokenizer
func NewSqlTokenizer(input string, options ...TokenizerOptions) *SqlTokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &SqlTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. The iteration stops at the first
// error or after yielding EOF.
func (t *SqlTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:   t.input,
			line:    1,
			column:  1,
			options: t.options,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			// Filtering based on options
			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if t.options.SkipComments && (token.Type == LINE_COMMENT || token.Type == BLOCK_COMMENT) {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. The trailing EOF token is included.
func (t *SqlTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Tokenize is a shortcut for NewSqlTokenizer(input).AllTokens() without the EOF token.
func Tokenize(input string) ([]Token, error) {
	tokens, err := NewSqlTokenizer(input).AllTokens()
	if err != nil {
		return nil, err
	}

	if n := len(tokens); n > 0 && tokens[n-1].Type == EOF {
		tokens = tokens[:n-1]
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input    string
	position int // byte offset of the rune after current
	start    int // byte offset of current
	line     int
	column   int
	current  rune
	options  TokenizerOptions
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case 0:
		return t.newToken(EOF, t.start, t.line, t.column), nil
	case '(':
		return t.single(OPENED_PARENS), nil
	case ')':
		return t.single(CLOSED_PARENS), nil
	case ',':
		return t.single(COMMA), nil
	case ';':
		return t.single(SEMICOLON), nil
	case '.':
		if isDigit(t.peekChar()) {
			return t.readNumber()
		}

		return t.single(DOT), nil
	case '\'':
		return t.readQuoted('\'', STRING, ErrUnterminatedString)
	case '"':
		return t.readQuoted('"', QUOTED_IDENTIFIER, ErrUnterminatedIdentifier)
	case '`':
		return t.readQuoted('`', QUOTED_IDENTIFIER, ErrUnterminatedIdentifier)
	case '-':
		if t.peekChar() == '-' {
			return t.readLineComment(), nil
		}

		return t.single(MINUS), nil
	case '/':
		if t.peekChar() == '*' {
			return t.readBlockComment()
		}

		return t.single(DIVIDE), nil
	case '=':
		return t.single(EQUAL), nil
	case '<':
		switch t.peekChar() {
		case '=':
			return t.double(LESS_EQUAL), nil
		case '>':
			return t.double(NOT_EQUAL), nil
		}

		return t.single(LESS_THAN), nil
	case '>':
		if t.peekChar() == '=' {
			return t.double(GREATER_EQUAL), nil
		}

		return t.single(GREATER_THAN), nil
	case '!':
		if t.peekChar() == '=' {
			return t.double(NOT_EQUAL), nil
		}

		// '!' alone is treated as OTHER
		return t.single(OTHER), nil
	case '|':
		if t.peekChar() == '|' {
			return t.double(CONCAT), nil
		}

		return t.single(OTHER), nil
	case ':':
		if t.peekChar() == ':' {
			return t.double(DOUBLE_COLON), nil
		}

		if isWordStart(t.peekChar()) {
			return t.readPlaceholder(), nil
		}

		return t.single(OTHER), nil
	case '?':
		return t.single(PLACEHOLDER), nil
	case '$':
		if isDigit(t.peekChar()) || isWordStart(t.peekChar()) {
			return t.readPlaceholder(), nil
		}

		return t.single(OTHER), nil
	case '+':
		return t.single(PLUS), nil
	case '*':
		return t.single(MULTIPLY), nil
	case '%':
		return t.single(MODULO), nil
	}

	switch {
	case unicode.IsSpace(t.current):
		return t.readWhitespace(), nil
	case isWordStart(t.current):
		return t.readWord(), nil
	case isDigit(t.current):
		return t.readNumber()
	default:
		// Other characters are treated as OTHER
		return t.single(OTHER), nil
	}
}

// readChar reads the next character
func (t *tokenizer) readChar() {
	if t.current == '\n' {
		t.line++
		t.column = 1
	} else if t.current != 0 {
		t.column++
	}

	t.start = t.position

	if t.position >= len(t.input) {
		t.current = 0
		return
	}

	r, size := utf8.DecodeRuneInString(t.input[t.position:])
	t.current = r
	t.position += size
}

// peekChar looks ahead at the next character
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(t.input[t.position:])

	return r
}

// single consumes the current rune as a token of the given type.
func (t *tokenizer) single(tokenType TokenType) Token {
	start, line, column := t.start, t.line, t.column
	t.readChar()

	return t.newToken(tokenType, start, line, column)
}

// double consumes the current and the next rune as one token.
func (t *tokenizer) double(tokenType TokenType) Token {
	start, line, column := t.start, t.line, t.column
	t.readChar()
	t.readChar()

	return t.newToken(tokenType, start, line, column)
}

// readWhitespace reads whitespace characters
func (t *tokenizer) readWhitespace() Token {
	start, line, column := t.start, t.line, t.column

	for t.current != 0 && unicode.IsSpace(t.current) {
		t.readChar()
	}

	return t.newToken(WHITESPACE, start, line, column)
}

// readWord reads words (identifiers and keywords)
func (t *tokenizer) readWord() Token {
	start, line, column := t.start, t.line, t.column

	for isWordPart(t.current) {
		t.readChar()
	}

	token := t.newToken(IDENTIFIER, start, line, column)
	token.Type = LookupKeyword(token.Value)

	if t.options.UpperCase {
		token.Value = strings.ToUpper(token.Value)
	}

	return token
}

// readQuoted reads string literals and quoted identifiers. A doubled
// delimiter and a backslash escape both stay inside the literal.
func (t *tokenizer) readQuoted(delimiter rune, tokenType TokenType, unterminated error) (Token, error) {
	start, line, column := t.start, t.line, t.column

	t.readChar() // opening quote

	for {
		switch t.current {
		case 0:
			return Token{}, fmt.Errorf("%w: %c at line %d, column %d", unterminated, delimiter, line, column)
		case '\\':
			t.readChar()
			if t.current != 0 {
				t.readChar()
			}
		case delimiter:
			t.readChar()
			if t.current != delimiter {
				return t.newToken(tokenType, start, line, column), nil
			}

			t.readChar()
		default:
			t.readChar()
		}
	}
}

// readNumber reads numeric literals
func (t *tokenizer) readNumber() (Token, error) {
	start, line, column := t.start, t.line, t.column

	// Integer part
	for isDigit(t.current) {
		t.readChar()
	}

	// Decimal point
	if t.current == '.' && isDigit(t.peekChar()) {
		t.readChar()

		for isDigit(t.current) {
			t.readChar()
		}
	}

	// Exponential part
	if t.current == 'e' || t.current == 'E' {
		t.readChar()

		if t.current == '+' || t.current == '-' {
			t.readChar()
		}

		if !isDigit(t.current) {
			return Token{}, fmt.Errorf("%w: invalid exponent at line %d, column %d", ErrInvalidNumber, line, column)
		}

		for isDigit(t.current) {
			t.readChar()
		}
	}

	return t.newToken(NUMBER, start, line, column), nil
}

// readPlaceholder reads $1, $name and :name style parameters.
func (t *tokenizer) readPlaceholder() Token {
	start, line, column := t.start, t.line, t.column

	t.readChar() // '$' or ':'

	for isWordPart(t.current) {
		t.readChar()
	}

	return t.newToken(PLACEHOLDER, start, line, column)
}

// readLineComment reads line comments. The terminating newline is not part of the comment.
func (t *tokenizer) readLineComment() Token {
	start, line, column := t.start, t.line, t.column

	for t.current != 0 && t.current != '\n' {
		t.readChar()
	}

	return t.newToken(LINE_COMMENT, start, line, column)
}

// readBlockComment reads block comments
func (t *tokenizer) readBlockComment() (Token, error) {
	start, line, column := t.start, t.line, t.column

	// '/*'
	t.readChar()
	t.readChar()

	for t.current != 0 {
		if t.current == '*' && t.peekChar() == '/' {
			t.readChar()
			t.readChar()

			return t.newToken(BLOCK_COMMENT, start, line, column), nil
		}

		t.readChar()
	}

	return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedComment, line, column)
}

// newToken creates a token spanning from start to the current rune.
func (t *tokenizer) newToken(tokenType TokenType, start, line, column int) Token {
	return Token{
		Type:  tokenType,
		Value: t.input[start:t.start],
		Position: Position{
			Line:   line,
			Column: column,
			Offset: start,
		},
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isWordPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}
