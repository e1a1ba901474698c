// Package fixture runs directory based tree fixtures.
//
// A fixture directory holds query files under sql/ and the expected dictionary
// export of each query under expected/, paired by base name:
//
//	fixtures/
//	  sql/select_basic.sql
//	  expected/select_basic.json
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/shibukawa/sqltree/export"
	"github.com/shibukawa/sqltree/sqlquery"
	"github.com/shibukawa/sqltree/tree"
)

// Sentinel errors
var (
	ErrExpectedNotFound = errors.New("expected output not found")
	ErrNoCases          = errors.New("no fixture cases found")
	ErrMismatch         = errors.New("tree does not match expected output")
)

const (
	sqlDir      = "sql"
	expectedDir = "expected"
)

// Case is one query paired with its expected export.
type Case struct {
	Name         string
	SQLPath      string
	ExpectedPath string
	SQL          string
	Expected     *tree.Node // nil when the expected file does not exist yet
}

// Result is the outcome of one case.
type Result struct {
	Name     string
	Success  bool
	Duration time.Duration
	Actual   tree.Node
	Error    error
}

// Summary aggregates results.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
	Results  []Result
}

// Load reads every sql/<name>.sql under dir along with expected/<name>.json.
// A missing expectation fails with ErrExpectedNotFound.
func Load(dir string) ([]*Case, error) {
	cases, err := scan(dir)
	if err != nil {
		return nil, err
	}

	for _, c := range cases {
		if c.Expected == nil {
			return nil, fmt.Errorf("%w: %s", ErrExpectedNotFound, c.ExpectedPath)
		}
	}

	return cases, nil
}

// scan collects cases without requiring expectations.
func scan(dir string) ([]*Case, error) {
	paths, err := filepath.Glob(filepath.Join(dir, sqlDir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCases, dir)
	}

	sort.Strings(paths)

	cases := make([]*Case, 0, len(paths))

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".sql")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		c := &Case{
			Name:         name,
			SQLPath:      path,
			ExpectedPath: filepath.Join(dir, expectedDir, name+".json"),
			SQL:          string(data),
		}

		expected, err := os.ReadFile(c.ExpectedPath)

		switch {
		case errors.Is(err, os.ErrNotExist):
			sigolo.Debugf("No expectation for fixture %s", name)
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", c.ExpectedPath, err)
		default:
			node, err := export.Read(expected, export.JSON)
			if err != nil {
				return nil, fmt.Errorf("invalid expectation %s: %w", c.ExpectedPath, err)
			}

			c.Expected = &node
		}

		cases = append(cases, c)
	}

	return cases, nil
}

// Build returns the dictionary export of sql.
func Build(sql string, normalize bool) (tree.Node, error) {
	q := sqlquery.New()
	if err := q.SetQuery(sql, normalize); err != nil {
		return tree.Node{}, err
	}

	return q.TreeToDict()
}

// Run builds each case and compares it with the expectation.
func Run(cases []*Case, normalize bool) *Summary {
	summary := &Summary{Results: make([]Result, 0, len(cases))}
	start := time.Now()

	for _, c := range cases {
		result := runCase(c, normalize)
		summary.Results = append(summary.Results, result)

		summary.Total++
		if result.Success {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	summary.Duration = time.Since(start)

	return summary
}

func runCase(c *Case, normalize bool) Result {
	start := time.Now()
	result := Result{Name: c.Name}

	actual, err := Build(c.SQL, normalize)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err
		return result
	}

	result.Actual = actual

	switch {
	case c.Expected == nil:
		result.Error = fmt.Errorf("%w: %s", ErrExpectedNotFound, c.ExpectedPath)
	case !c.Expected.Equal(actual):
		result.Error = fmt.Errorf("%w: %s", ErrMismatch, c.Name)
	default:
		result.Success = true
	}

	sigolo.Tracef("Fixture %s: success=%t (%s)", c.Name, result.Success, result.Duration)

	return result
}

// WriteExpected regenerates expected/<name>.json for every query under dir
// and returns the names written.
func WriteExpected(dir string, normalize bool) ([]string, error) {
	cases, err := scan(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(dir, expectedDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create expected directory: %w", err)
	}

	written := make([]string, 0, len(cases))

	for _, c := range cases {
		actual, err := Build(c.SQL, normalize)
		if err != nil {
			return written, fmt.Errorf("fixture %s: %w", c.Name, err)
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, actual, export.JSON, true); err != nil {
			return written, err
		}

		if err := os.WriteFile(c.ExpectedPath, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", c.ExpectedPath, err)
		}

		sigolo.Infof("Wrote %s", c.ExpectedPath)

		written = append(written, c.Name)
	}

	return written, nil
}
