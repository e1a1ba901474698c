package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/shibukawa/sqltree/tree"
)

var (
	labelFmt = color.New(color.FgBlue, color.Bold).SprintfFunc()
	kindFmt  = color.New(color.FgCyan).SprintfFunc()
)

// StatsCmd represents the stats command
type StatsCmd struct {
	Source    InputArgs `embed:""`
	Normalize bool      `short:"n" help:"Normalize the query before building the tree"`
}

// Run executes the stats command
func (cmd *StatsCmd) Run(ctx *Context) error {
	q, err := loadQuery(ctx, cmd.Source, cmd.Normalize)
	if err != nil {
		return err
	}

	qt, err := q.QueryTree()
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout, "%s %d\n", labelFmt("Depth:"), qt.Depth())
	fmt.Fprintf(ctx.Stdout, "%s %d\n", labelFmt("Nodes:"), qt.Len())
	fmt.Fprintln(ctx.Stdout, labelFmt("Kinds:"))

	for _, entry := range countKinds(qt.Root) {
		fmt.Fprintf(ctx.Stdout, "  %-20s %d\n", kindFmt("%s", entry.kind), entry.count)
	}

	return nil
}

type kindCount struct {
	kind  tree.Kind
	count int
}

// countKinds tallies token kinds, most frequent first.
func countKinds(root *tree.SQLNode) []kindCount {
	counts := map[tree.Kind]int{}

	for node := range root.All() {
		if node.Token != nil {
			counts[node.Token.Kind]++
		}
	}

	result := make([]kindCount, 0, len(counts))
	for kind, count := range counts {
		result = append(result, kindCount{kind: kind, count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].count != result[j].count {
			return result[i].count > result[j].count
		}

		return result[i].kind < result[j].kind
	})

	return result
}
