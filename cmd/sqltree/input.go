package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hauke96/sigolo/v2"
	"github.com/shibukawa/sqltree/mdsql"
)

// Sentinel errors for command operations
var (
	ErrBlockOutOfRange = errors.New("sql block index out of range")
	ErrEmptyInput      = errors.New("input is empty")
)

// InputArgs selects the SQL a command works on.
type InputArgs struct {
	Input string `arg:"" optional:"" help:"SQL or Markdown file (default: stdin)"`
	Block int    `help:"Index of the sql code block when the input is Markdown" default:"0"`
}

// read returns the SQL text. Markdown input yields the selected ```sql block.
func (in InputArgs) read(ctx *Context) (string, error) {
	var (
		data []byte
		err  error
	)

	if in.Input == "" || in.Input == "-" {
		data, err = io.ReadAll(ctx.Stdin)
	} else {
		data, err = os.ReadFile(in.Input)
	}

	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	if !isMarkdownFile(in.Input) {
		if strings.TrimSpace(string(data)) == "" {
			return "", ErrEmptyInput
		}

		return string(data), nil
	}

	blocks, err := mdsql.Extract(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse Markdown %s: %w", in.Input, err)
	}

	if len(blocks) == 0 {
		return "", fmt.Errorf("%w: %s", mdsql.ErrNoSQLBlock, in.Input)
	}

	if in.Block < 0 || in.Block >= len(blocks) {
		return "", fmt.Errorf("%w: %d (found %d)", ErrBlockOutOfRange, in.Block, len(blocks))
	}

	block := blocks[in.Block]
	sigolo.Debugf("Using sql block %d of %s (line %d, heading %q)", in.Block, in.Input, block.Line, block.Heading)

	return block.SQL, nil
}

func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}
