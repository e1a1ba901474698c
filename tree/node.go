package tree

import (
	"encoding/json"
)

// RootType is the type tag of the synthetic node wrapping a whole statement.
const RootType = "ROOT"

// Node is the exported form of a token. Groups always serialize a children
// array, possibly empty; leaves never do.
type Node struct {
	Type     string
	Value    string
	IsGroup  bool
	Children []Node
}

type nodeFields struct {
	Type     string  `json:"type" yaml:"type"`
	Value    string  `json:"value" yaml:"value"`
	IsGroup  bool    `json:"is_group" yaml:"is_group"`
	Children *[]Node `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n Node) fields() nodeFields {
	f := nodeFields{Type: n.Type, Value: n.Value, IsGroup: n.IsGroup}

	if n.IsGroup {
		children := n.Children
		if children == nil {
			children = []Node{}
		}

		f.Children = &children
	}

	return f
}

// MarshalJSON implements json.Marshaler
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.fields())
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Node) UnmarshalJSON(data []byte) error {
	var f nodeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	n.Type = f.Type
	n.Value = f.Value
	n.IsGroup = f.IsGroup
	n.Children = nil

	if f.Children != nil {
		n.Children = *f.Children
	}

	if n.IsGroup && n.Children == nil {
		n.Children = []Node{}
	}

	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler of goccy/go-yaml
func (n Node) MarshalYAML() (any, error) {
	return n.fields(), nil
}

// Equal compares two nodes structurally.
func (n Node) Equal(other Node) bool {
	if n.Type != other.Type || n.Value != other.Value || n.IsGroup != other.IsGroup {
		return false
	}

	if len(n.Children) != len(other.Children) {
		return false
	}

	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}

	return true
}

// Export converts a token sequence into nodes, preserving order.
func Export(tokens []*Token) []Node {
	result := make([]Node, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, ExportToken(t))
	}

	return result
}

// ExportToken converts one token and, for groups, its whole subtree.
func ExportToken(t *Token) Node {
	node := Node{
		Type:    t.Kind.String(),
		Value:   t.Text,
		IsGroup: t.IsGroup(),
	}

	if node.IsGroup {
		node.Children = Export(t.Tokens)
	}

	return node
}

// Root wraps a top level node sequence into the synthetic ROOT group.
func Root(value string, children []Node) Node {
	if children == nil {
		children = []Node{}
	}

	return Node{
		Type:     RootType,
		Value:    value,
		IsGroup:  true,
		Children: children,
	}
}

// Flatten returns the text of every leaf in pre-order.
func Flatten(tokens []*Token) []string {
	result := make([]string, 0, len(tokens))

	for _, t := range tokens {
		result = flattenInto(result, t)
	}

	return result
}

func flattenInto(result []string, t *Token) []string {
	if !t.IsGroup() {
		return append(result, t.Text)
	}

	for _, child := range t.Tokens {
		result = flattenInto(result, child)
	}

	return result
}
