// Package mdsql extracts SQL queries from ```sql fenced code blocks of Markdown documents.
package mdsql

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ErrNoSQLBlock is returned when a document contains no sql code block.
var ErrNoSQLBlock = errors.New("no sql code block found")

// Block is one sql code block.
type Block struct {
	Heading string // text of the nearest preceding heading, may be empty
	SQL     string
	Line    int // 1-based line of the first SQL line
}

// Extract returns every sql code block of content in document order.
func Extract(content []byte) ([]Block, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(content))

	var (
		blocks  []Block
		heading string
	)

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading = headingText(node, content)
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if !isSQL(node, content) {
				return ast.WalkSkipChildren, nil
			}

			block := Block{Heading: heading, SQL: blockText(node, content)}
			if node.Lines().Len() > 0 {
				block.Line = bytes.Count(content[:node.Lines().At(0).Start], []byte("\n")) + 1
			}

			blocks = append(blocks, block)

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return blocks, nil
}

// First returns the first sql block.
func First(content []byte) (Block, error) {
	blocks, err := Extract(content)
	if err != nil {
		return Block{}, err
	}

	if len(blocks) == 0 {
		return Block{}, ErrNoSQLBlock
	}

	return blocks[0], nil
}

func isSQL(node *ast.FencedCodeBlock, content []byte) bool {
	if node.Info == nil {
		return false
	}

	info := strings.Fields(string(node.Info.Segment.Value(content)))

	return len(info) > 0 && strings.EqualFold(info[0], "sql")
}

func blockText(node *ast.FencedCodeBlock, content []byte) string {
	var sb strings.Builder

	lines := node.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		sb.Write(line.Value(content))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func headingText(node *ast.Heading, content []byte) string {
	var sb strings.Builder

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); entering && ok {
			sb.Write(t.Segment.Value(content))
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}
