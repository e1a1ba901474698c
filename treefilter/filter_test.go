package treefilter

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/sqltree/tree"
)

func buildTree(t *testing.T, sql string) *tree.SQLNode {
	t.Helper()

	qt, err := tree.NewQueryTree(sql)
	assert.NoError(t, err)

	return qt.Root
}

func texts(matches []Match) []string {
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Node.Token == nil {
			result = append(result, "<group>")
		} else {
			result = append(result, m.Node.Token.Text)
		}
	}

	return result
}

func TestSelect(t *testing.T) {
	root := buildTree(t, "SELECT name, age FROM People WHERE age > 30")

	tests := []struct {
		name       string
		expression string
		expected   []string
	}{
		{"by kind", `kind == "Name"`, []string{"name", "age", "People", "age"}},
		{"by kind and level", `kind == "Name" && level > 2`, []string{"age"}},
		{"groups", `is_group`, []string{"name, age", "WHERE age > 30", "age > 30"}},
		{"structural root", `structural`, []string{"<group>"}},
		{"text functions", `text.startsWith("Peo")`, []string{"People"}},
		{"children count", `children == 5`, []string{"age > 30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := Compile(tt.expression)
			assert.NoError(t, err)
			assert.Equal(t, tt.expression, filter.String())

			matches, err := filter.Select(root)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, texts(matches))
		})
	}
}

func TestSelectLevels(t *testing.T) {
	root := buildTree(t, "SELECT * FROM (SELECT id FROM users)")

	filter, err := Compile(`kind == "DML"`)
	assert.NoError(t, err)

	matches, err := filter.Select(root)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(matches))
	assert.Equal(t, 1, matches[0].Level)
	assert.Equal(t, 2, matches[1].Level)
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(`kind ==`)
	assert.True(t, errors.Is(err, ErrInvalidExpression))

	_, err = Compile(`unknown_var == 1`)
	assert.True(t, errors.Is(err, ErrInvalidExpression))
}

func TestNonBooleanExpression(t *testing.T) {
	filter, err := Compile(`text`)
	assert.NoError(t, err)

	_, err = filter.Select(buildTree(t, "SELECT 1"))
	assert.True(t, errors.Is(err, ErrNotBoolean))
}
