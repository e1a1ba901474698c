// Package export writes exported SQL trees as JSON, YAML or XML and reads
// them back.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/sqltree/tree"
)

// Sentinel errors
var (
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrNoNodeElement    = errors.New("no node element found")
	ErrInvalidAttribute = errors.New("invalid attribute value")
)

// Format is an output encoding
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	XML  Format = "xml"
)

// ParseFormat accepts json, yaml (or yml) and xml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "xml":
		return XML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write encodes node to w.
func Write(w io.Writer, node tree.Node, format Format, pretty bool) error {
	switch format {
	case JSON:
		return writeJSON(w, node, pretty)
	case YAML:
		return writeYAML(w, node)
	case XML:
		doc := etree.NewDocument()
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
		appendElement(&doc.Element, node)

		return writeXML(w, doc, pretty)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteTokens encodes a flattened token list to w.
func WriteTokens(w io.Writer, tokens []string, format Format, pretty bool) error {
	switch format {
	case JSON:
		return writeJSON(w, tokens, pretty)
	case YAML:
		return writeYAML(w, tokens)
	case XML:
		doc := etree.NewDocument()
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

		root := doc.CreateElement("tokens")
		for _, t := range tokens {
			root.CreateElement("token").SetText(t)
		}

		return writeXML(w, doc, pretty)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	if pretty {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	_, err = w.Write(data)

	return err
}

func writeXML(w io.Writer, doc *etree.Document, pretty bool) error {
	if pretty {
		doc.Indent(2)
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}

	return nil
}

func appendElement(parent *etree.Element, node tree.Node) {
	elem := parent.CreateElement("node")
	elem.CreateAttr("type", node.Type)
	elem.CreateAttr("is_group", strconv.FormatBool(node.IsGroup))
	elem.CreateAttr("value", node.Value)

	for _, child := range node.Children {
		appendElement(elem, child)
	}
}

// Read decodes a node written by Write.
func Read(data []byte, format Format) (tree.Node, error) {
	switch format {
	case JSON:
		var node tree.Node
		if err := json.Unmarshal(data, &node); err != nil {
			return tree.Node{}, fmt.Errorf("failed to decode JSON: %w", err)
		}

		return node, nil
	case YAML:
		var node yamlNode
		if err := yaml.Unmarshal(data, &node); err != nil {
			return tree.Node{}, fmt.Errorf("failed to decode YAML: %w", err)
		}

		return node.toNode(), nil
	case XML:
		return readXML(data)
	default:
		return tree.Node{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

type yamlNode struct {
	Type     string      `yaml:"type"`
	Value    string      `yaml:"value"`
	IsGroup  bool        `yaml:"is_group"`
	Children []*yamlNode `yaml:"children"`
}

func (n *yamlNode) toNode() tree.Node {
	node := tree.Node{Type: n.Type, Value: n.Value, IsGroup: n.IsGroup}

	if n.IsGroup {
		node.Children = make([]tree.Node, 0, len(n.Children))
		for _, child := range n.Children {
			node.Children = append(node.Children, child.toNode())
		}
	}

	return node
}

func readXML(data []byte) (tree.Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(bytes.NewReader(data)); err != nil {
		return tree.Node{}, fmt.Errorf("failed to decode XML: %w", err)
	}

	elem := doc.SelectElement("node")
	if elem == nil {
		return tree.Node{}, ErrNoNodeElement
	}

	return elementToNode(elem)
}

func elementToNode(elem *etree.Element) (tree.Node, error) {
	isGroup, err := strconv.ParseBool(elem.SelectAttrValue("is_group", "false"))
	if err != nil {
		return tree.Node{}, fmt.Errorf("%w: is_group: %w", ErrInvalidAttribute, err)
	}

	node := tree.Node{
		Type:    elem.SelectAttrValue("type", ""),
		Value:   elem.SelectAttrValue("value", ""),
		IsGroup: isGroup,
	}

	if !isGroup {
		return node, nil
	}

	node.Children = []tree.Node{}

	for _, child := range elem.SelectElements("node") {
		childNode, err := elementToNode(child)
		if err != nil {
			return tree.Node{}, err
		}

		node.Children = append(node.Children, childNode)
	}

	return node, nil
}
