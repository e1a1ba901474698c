package processor

import (
	"fmt"

	"github.com/hauke96/sigolo/v2"
	"github.com/shibukawa/sqltree"
	"github.com/shibukawa/sqltree/formatter"
	"github.com/shibukawa/sqltree/grouping"
	"github.com/shibukawa/sqltree/tree"
)

// QueryProcessor normalizes SQL text and parses it into a token tree.
// It keeps no state between calls.
type QueryProcessor struct {
	formatOptions formatter.Options
}

// Option configures a QueryProcessor
type Option func(*QueryProcessor)

// WithFormatOptions replaces the normalization options. Normalization for
// trees uses formatter.DefaultOptions.
func WithFormatOptions(opts formatter.Options) Option {
	return func(p *QueryProcessor) {
		p.formatOptions = opts
	}
}

// NewQueryProcessor creates a QueryProcessor
func NewQueryProcessor(opts ...Option) *QueryProcessor {
	p := &QueryProcessor{formatOptions: formatter.DefaultOptions()}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Normalize reformats raw: clauses reindented, keywords upper-cased,
// redundant whitespace stripped.
func (p *QueryProcessor) Normalize(raw string) (string, error) {
	normalized, err := formatter.Format(raw, p.formatOptions)
	if err != nil {
		sigolo.Debugf("normalization failed: %v", err)
		return "", fmt.Errorf("%w: %w", sqltree.ErrNormalization, err)
	}

	sigolo.Tracef("normalized %q to %q", raw, normalized)

	return normalized, nil
}

// Parse returns the top level tokens of the first statement in raw.
func (p *QueryProcessor) Parse(raw string) ([]*tree.Token, error) {
	statements, err := grouping.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sqltree.ErrParse, err)
	}

	if len(statements) == 0 {
		return nil, fmt.Errorf("%w: no statement found", sqltree.ErrParse)
	}

	if len(statements) > 1 {
		sigolo.Debugf("%d statements found, only the first one is used", len(statements))
	}

	tokens := tree.FromStatement(statements[0])
	sigolo.Tracef("parsed %d top level tokens", len(tokens))

	return tokens, nil
}
