package main

import (
	"fmt"
	"strings"

	"github.com/shibukawa/sqltree/treefilter"
)

// FindCmd represents the find command
type FindCmd struct {
	Expression string    `arg:"" help:"CEL predicate over kind, text, is_group, structural, level and children"`
	Source     InputArgs `embed:""`
	Normalize  bool      `short:"n" help:"Normalize the query before building the tree"`
	Count      bool      `help:"Print only the number of matches"`
}

// Run executes the find command
func (cmd *FindCmd) Run(ctx *Context) error {
	filter, err := treefilter.Compile(cmd.Expression)
	if err != nil {
		return err
	}

	q, err := loadQuery(ctx, cmd.Source, cmd.Normalize)
	if err != nil {
		return err
	}

	qt, err := q.QueryTree()
	if err != nil {
		return err
	}

	matches, err := filter.Select(qt.Root)
	if err != nil {
		return err
	}

	if cmd.Count {
		fmt.Fprintln(ctx.Stdout, len(matches))
		return nil
	}

	for _, m := range matches {
		indent := strings.Repeat("  ", m.Level)
		if m.Node.Token == nil {
			fmt.Fprintf(ctx.Stdout, "%s%s\n", indent, kindFmt("<group>"))
			continue
		}

		fmt.Fprintf(ctx.Stdout, "%s%s %q\n", indent, kindFmt("%s", m.Node.Token.Kind), m.Node.Token.Text)
	}

	return nil
}
