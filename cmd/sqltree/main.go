package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/hauke96/sigolo/v2"
	"github.com/shibukawa/sqltree"
)

const version = "v0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  *sqltree.Config
	Verbose bool
	Quiet   bool
	Stdin   io.Reader
	Stdout  io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path" default:"sqltree.yaml"`
	Verbose bool   `help:"Enable debug logging" short:"v"`
	Quiet   bool   `help:"Suppress informational output" short:"q"`
	NoColor bool   `help:"Disable colored output"`

	Tree     TreeCmd     `cmd:"" help:"Print the dictionary export of a query"`
	Flatten  FlattenCmd  `cmd:"" help:"Print the leaf token texts of a query"`
	Format   FormatCmd   `cmd:"" help:"Format SQL"`
	Stats    StatsCmd    `cmd:"" help:"Print depth, node count and token kinds of a query"`
	Find     FindCmd     `cmd:"" help:"Print tree nodes matching a CEL expression"`
	Fixtures FixturesCmd `cmd:"" help:"Check or regenerate tree fixtures"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "sqltree %s\n", version)
	return nil
}

func main() {
	kctx := kong.Parse(
		&CLI,
		kong.Name("sqltree"),
		kong.Description("Builds, flattens and exports structural trees of SQL statements."),
		kong.Vars{
			"version": version,
		},
	)

	config, err := sqltree.LoadConfig(CLI.Config)
	if err != nil {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(config.Log.Level, CLI.Verbose)
	setupColor(config.Output.Color, CLI.NoColor)

	appCtx := &Context{
		Config:  config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func setupLogging(level string, verbose bool) {
	if verbose && level != "trace" {
		level = "debug"
	}

	switch level {
	case "trace":
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	case "debug":
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	default:
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	}
}

func setupColor(configured *bool, disabled bool) {
	switch {
	case disabled:
		color.NoColor = true
	case configured != nil:
		color.NoColor = !*configured
	}
}
