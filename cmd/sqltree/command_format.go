package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shibukawa/sqltree/formatter"
)

var ErrNotFormatted = errors.New("input is not formatted")

// FormatCmd represents the format command
type FormatCmd struct {
	Source      InputArgs `embed:""`
	KeywordCase string    `short:"k" help:"Keyword case: upper, lower, capitalize or preserve (default: from config)"`
	Indent      int       `help:"Indent width for AND/OR lines (default: from config)"`
	NoReindent  bool      `help:"Keep clauses on their original lines"`
	Check       bool      `short:"c" help:"Exit with an error when the input is not formatted"`
}

// options merges the command line with the formatter section of the config.
func (cmd *FormatCmd) options(ctx *Context) (formatter.Options, error) {
	options := ctx.Config.Formatter.FormatOptions()

	if cmd.KeywordCase != "" {
		keywordCase, err := formatter.ParseKeywordCase(cmd.KeywordCase)
		if err != nil {
			return formatter.Options{}, err
		}

		options.KeywordCase = keywordCase
	}

	if cmd.Indent > 0 {
		options.IndentWidth = cmd.Indent
	}

	if cmd.NoReindent {
		options.Reindent = false
	}

	return options, nil
}

// Run executes the format command
func (cmd *FormatCmd) Run(ctx *Context) error {
	options, err := cmd.options(ctx)
	if err != nil {
		return err
	}

	sql, err := cmd.Source.read(ctx)
	if err != nil {
		return err
	}

	formatted, err := formatter.NewSQLFormatter(options).Format(sql)
	if err != nil {
		return fmt.Errorf("failed to format SQL: %w", err)
	}

	if cmd.Check {
		if strings.TrimSpace(sql) != formatted {
			if !ctx.Quiet {
				fmt.Fprintf(os.Stderr, "%s is not formatted\n", displayName(cmd.Source.Input))
			}

			return ErrNotFormatted
		}

		return nil
	}

	_, err = fmt.Fprintln(ctx.Stdout, formatted)

	return err
}

func displayName(input string) string {
	if input == "" || input == "-" {
		return "<stdin>"
	}

	return input
}
