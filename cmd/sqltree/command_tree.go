package main

import (
	"github.com/shibukawa/sqltree/export"
	"github.com/shibukawa/sqltree/sqlquery"
)

// OutputArgs selects the encoding of printed trees.
type OutputArgs struct {
	Output string `short:"o" help:"Output format: json, yaml or xml (default: from config)"`
	Pretty bool   `short:"p" help:"Indent the output"`
}

func (o OutputArgs) resolve(ctx *Context) (export.Format, bool, error) {
	name := o.Output
	if name == "" {
		name = ctx.Config.Output.Format
	}

	format, err := export.ParseFormat(name)
	if err != nil {
		return "", false, err
	}

	return format, o.Pretty || ctx.Config.Output.Pretty, nil
}

// TreeCmd represents the tree command
type TreeCmd struct {
	Source    InputArgs  `embed:""`
	Out       OutputArgs `embed:""`
	Normalize bool       `short:"n" help:"Normalize the query before building the tree"`
}

// Run executes the tree command
func (cmd *TreeCmd) Run(ctx *Context) error {
	format, pretty, err := cmd.Out.resolve(ctx)
	if err != nil {
		return err
	}

	q, err := loadQuery(ctx, cmd.Source, cmd.Normalize)
	if err != nil {
		return err
	}

	node, err := q.TreeToDict()
	if err != nil {
		return err
	}

	return export.Write(ctx.Stdout, node, format, pretty)
}

// FlattenCmd represents the flatten command
type FlattenCmd struct {
	Source    InputArgs  `embed:""`
	Out       OutputArgs `embed:""`
	Normalize bool       `short:"n" help:"Normalize the query before building the tree"`
}

// Run executes the flatten command
func (cmd *FlattenCmd) Run(ctx *Context) error {
	format, pretty, err := cmd.Out.resolve(ctx)
	if err != nil {
		return err
	}

	q, err := loadQuery(ctx, cmd.Source, cmd.Normalize)
	if err != nil {
		return err
	}

	tokens, err := q.FlattenTree()
	if err != nil {
		return err
	}

	return export.WriteTokens(ctx.Stdout, tokens, format, pretty)
}

func loadQuery(ctx *Context, source InputArgs, normalize bool) (*sqlquery.Query, error) {
	sql, err := source.read(ctx)
	if err != nil {
		return nil, err
	}

	q := sqlquery.New()
	if err := q.SetQuery(sql, normalize); err != nil {
		return nil, err
	}

	return q, nil
}
