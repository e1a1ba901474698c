// Package treefilter selects nodes of a generic SQL tree with CEL predicates.
//
// A predicate sees these variables:
//
//	kind        string  type tag of the token, "" for structural nodes
//	text        string  token text, "" for structural nodes
//	is_group    bool    the token owns nested tokens
//	structural  bool    the node carries no token
//	level       int     distance from the root, the root is 0
//	children    int     number of direct children
//
// Example: kind == "Name" && level > 2
package treefilter

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/shibukawa/sqltree/tree"
)

// Sentinel errors
var (
	ErrInvalidExpression = errors.New("invalid filter expression")
	ErrNotBoolean        = errors.New("filter expression must evaluate to bool")
)

// Filter is a compiled predicate.
type Filter struct {
	expression string
	program    cel.Program
}

// Match is a selected node with its distance from the root.
type Match struct {
	Node  *tree.SQLNode
	Level int
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("kind", cel.StringType),
		cel.Variable("text", cel.StringType),
		cel.Variable("is_group", cel.BoolType),
		cel.Variable("structural", cel.BoolType),
		cel.Variable("level", cel.IntType),
		cel.Variable("children", cel.IntType),
	)
}

// Compile parses and type checks expression.
func Compile(expression string) (*Filter, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Match evaluates the predicate for one node at the given level.
func (f *Filter) Match(node *tree.SQLNode, level int) (bool, error) {
	vars := map[string]any{
		"kind":       "",
		"text":       "",
		"is_group":   false,
		"structural": node.IsStructural(),
		"level":      int64(level),
		"children":   int64(len(node.Children)),
	}

	if node.Token != nil {
		vars["kind"] = node.Token.Kind.String()
		vars["text"] = node.Token.Text
		vars["is_group"] = node.Token.IsGroup()
	}

	result, _, err := f.program.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("CEL evaluation error: %w", err)
	}

	matched, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %T", ErrNotBoolean, f.expression, result.Value())
	}

	return matched, nil
}

// Select returns the matching nodes of the subtree in pre-order.
func (f *Filter) Select(root *tree.SQLNode) ([]Match, error) {
	var result []Match

	err := f.walk(root, 0, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (f *Filter) walk(node *tree.SQLNode, level int, result *[]Match) error {
	matched, err := f.Match(node, level)
	if err != nil {
		return err
	}

	if matched {
		*result = append(*result, Match{Node: node, Level: level})
	}

	for _, child := range node.Children {
		if err := f.walk(child, level+1, result); err != nil {
			return err
		}
	}

	return nil
}
