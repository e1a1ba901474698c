package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/shibukawa/sqltree/fixture"
)

var ErrFixturesFailed = errors.New("some fixtures failed")

// FixturesCmd represents the fixtures command
type FixturesCmd struct {
	Dir       string `arg:"" optional:"" help:"Fixture directory with sql/ and expected/ (default: from config)"`
	Update    bool   `short:"u" help:"Regenerate expected/*.json from sql/*.sql"`
	Normalize bool   `short:"n" help:"Normalize queries before building trees (also enabled by fixtures.normalize)"`
}

// Run executes the fixtures command
func (cmd *FixturesCmd) Run(ctx *Context) error {
	dir := cmd.Dir
	if dir == "" {
		dir = ctx.Config.Fixtures.Dir
	}

	normalize := cmd.Normalize || ctx.Config.Fixtures.Normalize

	if cmd.Update {
		written, err := fixture.WriteExpected(dir, normalize)
		if err != nil {
			return err
		}

		if !ctx.Quiet {
			color.New(color.FgGreen).Fprintf(ctx.Stdout, "Updated %d fixtures in %s\n", len(written), dir)
		}

		return nil
	}

	cases, err := fixture.Load(dir)
	if err != nil {
		return err
	}

	summary := fixture.Run(cases, normalize)

	if !ctx.Quiet || summary.Failed > 0 {
		fixture.PrintSummary(ctx.Stdout, summary, ctx.Verbose)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFixturesFailed, summary.Failed, summary.Total)
	}

	return nil
}
