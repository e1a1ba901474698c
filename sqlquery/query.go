// Package sqlquery manages the lifecycle of one SQL query: setting the text,
// building and caching its token tree, and exporting the tree.
package sqlquery

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hauke96/sigolo/v2"
	"github.com/shibukawa/sqltree"
	"github.com/shibukawa/sqltree/processor"
	"github.com/shibukawa/sqltree/tree"
)

// Query holds a raw SQL text, optionally its normalized form, and a cached
// token tree. A Query must not be mutated from several goroutines.
type Query struct {
	id             uuid.UUID
	processor      *processor.QueryProcessor
	tokenProcessor *processor.TokenProcessor

	raw           string
	normalized    string
	hasNormalized bool

	tokens     []*tree.Token
	cached     bool
	generation int
}

// New creates an empty Query.
func New() *Query {
	return &Query{
		id:             uuid.New(),
		processor:      processor.NewQueryProcessor(),
		tokenProcessor: processor.NewTokenProcessor(),
	}
}

// ID identifies the query in log output.
func (q *Query) ID() uuid.UUID {
	return q.id
}

// Raw returns the text passed to SetQuery.
func (q *Query) Raw() string {
	return q.raw
}

// Normalized returns the normalized text if SetQuery ran in normalize mode.
func (q *Query) Normalized() (string, bool) {
	return q.normalized, q.hasNormalized
}

// Generation is bumped by every ClearCache.
func (q *Query) Generation() int {
	return q.generation
}

// SetQuery replaces the query. With normalize the text is normalized and the
// tree is built lazily from the normalized text; otherwise the text is parsed
// right away and no normalized text is kept. On error the previous state is
// left untouched.
func (q *Query) SetQuery(text string, normalize bool) error {
	if text == "" {
		return fmt.Errorf("%w: query cannot be empty", sqltree.ErrInvalidInput)
	}

	if normalize {
		normalized, err := q.processor.Normalize(text)
		if err != nil {
			return err
		}

		q.raw = text
		q.normalized = normalized
		q.hasNormalized = true
		q.tokens = nil
		q.cached = false

		sigolo.Debugf("query %s: set in normalize mode", q.id)

		return nil
	}

	tokens, err := q.processor.Parse(text)
	if err != nil {
		return err
	}

	q.raw = text
	q.normalized = ""
	q.hasNormalized = false
	q.tokens = tokens
	q.cached = true

	sigolo.Debugf("query %s: set in parse mode", q.id)

	return nil
}

// source is the text the tree is built from.
func (q *Query) source() string {
	if q.hasNormalized {
		return q.normalized
	}

	return q.raw
}

// CreateTree returns the top level tokens, parsing only when nothing is cached.
func (q *Query) CreateTree() ([]*tree.Token, error) {
	if q.raw == "" {
		return nil, sqltree.ErrNoQuerySet
	}

	if q.cached {
		sigolo.Tracef("query %s: tree cache hit", q.id)
		return q.tokens, nil
	}

	tokens, err := q.processor.Parse(q.source())
	if err != nil {
		return nil, err
	}

	q.tokens = tokens
	q.cached = true

	sigolo.Tracef("query %s: tree built (generation %d)", q.id, q.generation)

	return tokens, nil
}

// ClearCache drops the cached tree; the next CreateTree parses again.
func (q *Query) ClearCache() {
	q.tokens = nil
	q.cached = false
	q.generation++

	sigolo.Tracef("query %s: cache cleared", q.id)
}

// FlattenTree returns the normalized text of every leaf in pre-order.
func (q *Query) FlattenTree() ([]string, error) {
	tokens, err := q.CreateTree()
	if err != nil {
		return nil, err
	}

	return tree.Flatten(tokens), nil
}

// TreeToDict exports the tree below a synthetic ROOT node.
func (q *Query) TreeToDict() (tree.Node, error) {
	tokens, err := q.CreateTree()
	if err != nil {
		return tree.Node{}, err
	}

	children, err := q.tokenProcessor.Process(tokens)
	if err != nil {
		return tree.Node{}, err
	}

	return tree.Root(q.source(), children), nil
}

// QueryTree builds the generic tree view over the cached tokens.
func (q *Query) QueryTree() (*tree.QueryTree, error) {
	tokens, err := q.CreateTree()
	if err != nil {
		return nil, err
	}

	return &tree.QueryTree{
		SQL:  q.source(),
		Root: tree.BuildSQLNode(tokens),
	}, nil
}
