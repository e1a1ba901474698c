package processor

import (
	"fmt"

	"github.com/shibukawa/sqltree"
	"github.com/shibukawa/sqltree/tree"
)

// TokenProcessor converts token sequences into exported nodes.
type TokenProcessor struct{}

// NewTokenProcessor creates a TokenProcessor
func NewTokenProcessor() *TokenProcessor {
	return &TokenProcessor{}
}

// Process exports tokens in order. Only the top level sequence must be
// non-empty; empty nested groups export with an empty children list.
func (p *TokenProcessor) Process(tokens []*tree.Token) ([]tree.Node, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty token sequence", sqltree.ErrInvalidInput)
	}

	return tree.Export(tokens), nil
}
