package tree

import (
	"fmt"
	"iter"
	"strings"

	"github.com/shibukawa/sqltree"
	"github.com/shibukawa/sqltree/grouping"
)

// SQLNode is a node of the generic tree. A nil Token marks a structural
// node, used for the root and for parenthesized groups.
type SQLNode struct {
	Token    *Token
	Children []*SQLNode
}

// NewSQLNode creates a node holding token; pass nil for a structural node.
func NewSQLNode(token *Token) *SQLNode {
	return &SQLNode{Token: token}
}

// AddChild appends child and returns it.
func (n *SQLNode) AddChild(child *SQLNode) *SQLNode {
	n.Children = append(n.Children, child)
	return child
}

// IsStructural reports whether the node carries no token.
func (n *SQLNode) IsStructural() bool {
	return n.Token == nil
}

// Child returns the i-th child or nil when out of range.
func (n *SQLNode) Child(i int) *SQLNode {
	if i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

// FindTokens collects, in pre-order, the token of every node in the subtree
// whose kind matches.
func (n *SQLNode) FindTokens(kind Kind) []*Token {
	var result []*Token

	for node := range n.All() {
		if node.Token != nil && node.Token.Kind == kind {
			result = append(result, node.Token)
		}
	}

	return result
}

// Depth is 1 for a node without children, otherwise 1 + the deepest child.
func (n *SQLNode) Depth() int {
	deepest := 0

	for _, child := range n.Children {
		deepest = max(deepest, child.Depth())
	}

	return deepest + 1
}

// Count returns the number of nodes in the subtree, structural ones included.
func (n *SQLNode) Count() int {
	count := 1
	for _, child := range n.Children {
		count += child.Count()
	}

	return count
}

// All yields every node of the subtree in pre-order.
func (n *SQLNode) All() iter.Seq[*SQLNode] {
	return func(yield func(*SQLNode) bool) {
		n.walk(yield)
	}
}

func (n *SQLNode) walk(yield func(*SQLNode) bool) bool {
	if !yield(n) {
		return false
	}

	for _, child := range n.Children {
		if !child.walk(yield) {
			return false
		}
	}

	return true
}

// String renders the subtree, one node per line, indented by depth.
func (n *SQLNode) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)

	return sb.String()
}

func (n *SQLNode) dump(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))

	if n.Token == nil {
		sb.WriteString("<group>")
	} else {
		fmt.Fprintf(sb, "%s %q", n.Token.Kind, n.Token.Text)
	}

	sb.WriteString("\n")

	for _, child := range n.Children {
		child.dump(sb, level+1)
	}
}

// QueryTree is the generic tree of one SQL statement.
type QueryTree struct {
	SQL  string
	Root *SQLNode
}

// NewQueryTree parses sql and builds the tree of its first statement.
func NewQueryTree(sql string) (*QueryTree, error) {
	statements, err := grouping.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sqltree.ErrInvalidQuery, err)
	}

	if len(statements) == 0 {
		return nil, fmt.Errorf("%w: no statement found", sqltree.ErrInvalidQuery)
	}

	return &QueryTree{
		SQL:  sql,
		Root: BuildSQLNode(FromStatement(statements[0])),
	}, nil
}

// BuildSQLNode builds a structural root over tokens. Parenthesis and
// Subselect groups become structural nodes, other groups token nodes with
// their children expanded.
func BuildSQLNode(tokens []*Token) *SQLNode {
	root := NewSQLNode(nil)
	appendNodes(root, tokens)

	return root
}

func appendNodes(parent *SQLNode, tokens []*Token) {
	for _, t := range tokens {
		var node *SQLNode

		switch t.Kind {
		case Parenthesis, Subselect:
			node = NewSQLNode(nil)
		default:
			node = NewSQLNode(t)
		}

		parent.AddChild(node)

		if t.IsGroup() {
			appendNodes(node, t.Tokens)
		}
	}
}

// Len returns the number of nodes in the tree.
func (q *QueryTree) Len() int {
	return q.Root.Count()
}

// Depth returns the depth of the tree.
func (q *QueryTree) Depth() int {
	return q.Root.Depth()
}

// FindTokens searches the whole tree.
func (q *QueryTree) FindTokens(kind Kind) []*Token {
	return q.Root.FindTokens(kind)
}
