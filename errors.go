package sqltree

import "errors"

// Common errors used throughout the sqltree packages
var (
	// ErrInvalidInput is returned for empty query text or an empty token sequence.
	ErrInvalidInput = errors.New("invalid input")
	// ErrParse indicates the tokenizer failed or produced no statement.
	ErrParse = errors.New("failed to parse SQL")
	// ErrNormalization indicates the formatter rejected the query text.
	ErrNormalization = errors.New("failed to normalize SQL")
	// ErrNoQuerySet is returned when a tree is requested before a query was set.
	ErrNoQuerySet = errors.New("no query set")
	// ErrInvalidQuery is returned when a query tree cannot be built.
	ErrInvalidQuery = errors.New("invalid SQL query")
)
