package fixture

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/fatih/color"
	"github.com/shibukawa/sqltree/export"
	"github.com/shibukawa/sqltree/testhelper"
	"github.com/shibukawa/sqltree/tree"
	"github.com/stretchr/testify/require"
)

func TestWriteExpectedThenRun(t *testing.T) {
	for _, normalize := range []bool{false, true} {
		dir := testhelper.FixtureDir(t)

		written, err := WriteExpected(dir, normalize)
		require.NoError(t, err)
		assert.Equal(t, []string{"case_expression", "insert_values", "select_basic", "select_star", "subselect_alias"}, written)

		cases, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 5, len(cases))

		summary := Run(cases, normalize)
		assert.Equal(t, 5, summary.Total)
		assert.Equal(t, 5, summary.Passed)
		assert.Equal(t, 0, summary.Failed)
	}
}

func TestLoadMissingExpected(t *testing.T) {
	dir := testhelper.FixtureDir(t)

	_, err := Load(dir)
	assert.True(t, errors.Is(err, ErrExpectedNotFound))
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoCases))
}

func TestRunMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sql"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "expected"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sql", "one.sql"), []byte("SELECT 1"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, tree.Root("SELECT 2", []tree.Node{}), export.JSON, true))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expected", "one.json"), buf.Bytes(), 0o644))

	cases, err := Load(dir)
	require.NoError(t, err)

	summary := Run(cases, false)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, errors.Is(summary.Results[0].Error, ErrMismatch))
	assert.Equal(t, "SELECT 1", summary.Results[0].Actual.Value)
}

func TestRunBuildError(t *testing.T) {
	summary := Run([]*Case{{Name: "broken", SQL: "SELECT (1"}}, false)
	assert.Equal(t, 1, summary.Failed)
	assert.Error(t, summary.Results[0].Error)
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	t.Cleanup(func() {
		color.NoColor = false
	})

	summary := &Summary{
		Total:  2,
		Passed: 1,
		Failed: 1,
		Results: []Result{
			{Name: "good", Success: true},
			{Name: "bad", Error: ErrMismatch},
		},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, summary, true)

	output := buf.String()
	assert.True(t, strings.Contains(output, "Fixtures: 2 total, 1 passed, 1 failed"), output)
	assert.True(t, strings.Contains(output, "✅ good"), output)
	assert.True(t, strings.Contains(output, "❌ bad"), output)
	assert.True(t, strings.Contains(output, "Error: "+ErrMismatch.Error()), output)
	assert.True(t, strings.Contains(output, "Some fixtures failed!"), output)
}
