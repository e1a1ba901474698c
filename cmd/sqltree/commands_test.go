package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/sqltree"
	"github.com/shibukawa/sqltree/mdsql"
	"github.com/shibukawa/sqltree/testhelper"
	"github.com/stretchr/testify/require"
)

const peopleQuery = "SELECT name, age FROM People WHERE age > 30"

func newTestContext(t *testing.T, stdin string) (*Context, *bytes.Buffer) {
	t.Helper()

	config, err := sqltree.ParseConfig([]byte("log:\n  level: info\n"))
	require.NoError(t, err)

	var stdout bytes.Buffer

	return &Context{
		Config: config,
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
	}, &stdout
}

func TestTreeCmd(t *testing.T) {
	ctx, stdout := newTestContext(t, "SELECT 1")

	cmd := &TreeCmd{}
	assert.NoError(t, cmd.Run(ctx))

	expected := `{"type":"ROOT","value":"SELECT 1","is_group":true,"children":[` +
		`{"type":"DML","value":"SELECT","is_group":false},` +
		`{"type":"Whitespace","value":" ","is_group":false},` +
		`{"type":"Number","value":"1","is_group":false}]}` + "\n"
	assert.Equal(t, expected, stdout.String())
}

func TestTreeCmdYAML(t *testing.T) {
	ctx, stdout := newTestContext(t, "SELECT 1")

	cmd := &TreeCmd{Out: OutputArgs{Output: "yaml"}}
	assert.NoError(t, cmd.Run(ctx))
	assert.Contains(t, stdout.String(), "type: ROOT")
}

func TestTreeCmdUnknownFormat(t *testing.T) {
	ctx, _ := newTestContext(t, "SELECT 1")

	cmd := &TreeCmd{Out: OutputArgs{Output: "csv"}}
	assert.Error(t, cmd.Run(ctx))
}

func TestFlattenCmd(t *testing.T) {
	ctx, stdout := newTestContext(t, "SELECT * FROM users")

	cmd := &FlattenCmd{}
	assert.NoError(t, cmd.Run(ctx))
	assert.Equal(t, `["SELECT"," ","*"," ","FROM"," ","users"]`+"\n", stdout.String())
}

func TestFormatCmd(t *testing.T) {
	ctx, stdout := newTestContext(t, "select name, age from People where age > 30")

	cmd := &FormatCmd{}
	assert.NoError(t, cmd.Run(ctx))
	assert.Equal(t, "SELECT name, age\nFROM People\nWHERE age > 30\n", stdout.String())
}

func TestFormatCmdCheck(t *testing.T) {
	ctx, _ := newTestContext(t, "SELECT name, age\nFROM People\nWHERE age > 30\n")
	ctx.Quiet = true

	cmd := &FormatCmd{Check: true}
	assert.NoError(t, cmd.Run(ctx))

	ctx, _ = newTestContext(t, "select name from People")
	ctx.Quiet = true
	assert.True(t, errors.Is(cmd.Run(ctx), ErrNotFormatted))
}

func TestFormatCmdKeywordCase(t *testing.T) {
	ctx, stdout := newTestContext(t, "SELECT id FROM users")

	cmd := &FormatCmd{KeywordCase: "lower"}
	assert.NoError(t, cmd.Run(ctx))
	assert.Equal(t, "select id\nfrom users\n", stdout.String())

	cmd = &FormatCmd{KeywordCase: "shout"}
	assert.Error(t, cmd.Run(ctx))
}

func TestStatsCmd(t *testing.T) {
	ctx, stdout := newTestContext(t, peopleQuery)

	cmd := &StatsCmd{}
	assert.NoError(t, cmd.Run(ctx))

	output := stdout.String()
	assert.Contains(t, output, "Depth: 4")
	assert.Contains(t, output, "Nodes: 22")
	assert.Contains(t, output, "Name")
}

func TestFindCmd(t *testing.T) {
	ctx, stdout := newTestContext(t, peopleQuery)

	cmd := &FindCmd{Expression: `kind == "Name"`, Count: true}
	assert.NoError(t, cmd.Run(ctx))
	assert.Equal(t, "4\n", stdout.String())

	ctx, stdout = newTestContext(t, peopleQuery)
	cmd = &FindCmd{Expression: `text == "People"`}
	assert.NoError(t, cmd.Run(ctx))
	assert.Contains(t, stdout.String(), `Name "People"`)

	cmd = &FindCmd{Expression: `kind ==`}
	assert.Error(t, cmd.Run(ctx))
}

func TestMarkdownInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.md")
	content := "# Queries\n\n```sql\nSELECT 1\n```\n\n## Second\n\n```sql\nSELECT * FROM users\n```\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ctx, stdout := newTestContext(t, "")

	cmd := &FlattenCmd{Source: InputArgs{Input: path, Block: 1}}
	assert.NoError(t, cmd.Run(ctx))
	assert.Equal(t, `["SELECT"," ","*"," ","FROM"," ","users"]`+"\n", stdout.String())

	cmd = &FlattenCmd{Source: InputArgs{Input: path, Block: 2}}
	assert.True(t, errors.Is(cmd.Run(ctx), ErrBlockOutOfRange))
}

func TestMarkdownWithoutSQL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Notes\n\nNothing to see.\n"), 0o644))

	ctx, _ := newTestContext(t, "")

	cmd := &TreeCmd{Source: InputArgs{Input: path}}
	assert.True(t, errors.Is(cmd.Run(ctx), mdsql.ErrNoSQLBlock))
}

func TestEmptyInput(t *testing.T) {
	ctx, _ := newTestContext(t, "  \n")

	cmd := &TreeCmd{}
	assert.True(t, errors.Is(cmd.Run(ctx), ErrEmptyInput))
}

func TestFixturesCmd(t *testing.T) {
	dir := testhelper.FixtureDir(t)

	ctx, stdout := newTestContext(t, "")
	assert.NoError(t, (&FixturesCmd{Dir: dir, Update: true}).Run(ctx))
	assert.Contains(t, stdout.String(), "Updated 5 fixtures")

	ctx, stdout = newTestContext(t, "")
	assert.NoError(t, (&FixturesCmd{Dir: dir}).Run(ctx))
	assert.Contains(t, stdout.String(), "All fixtures passed!")

	// normalized trees differ from the raw expectations written above
	ctx, _ = newTestContext(t, "")
	ctx.Quiet = true
	assert.True(t, errors.Is((&FixturesCmd{Dir: dir, Normalize: true}).Run(ctx), ErrFixturesFailed))
}

func TestVersionCmd(t *testing.T) {
	ctx, stdout := newTestContext(t, "")

	assert.NoError(t, (&VersionCmd{}).Run(ctx))
	assert.Equal(t, "sqltree "+version+"\n", stdout.String())
}
