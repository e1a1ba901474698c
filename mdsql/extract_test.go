package mdsql

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const document = "# Queries\n" +
	"\n" +
	"## Active users\n" +
	"\n" +
	"```sql\n" +
	"SELECT id, name\n" +
	"FROM users\n" +
	"WHERE active = true\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"fmt.Println(\"not sql\")\n" +
	"```\n" +
	"\n" +
	"## Count\n" +
	"\n" +
	"```SQL title=count\n" +
	"SELECT COUNT(*) FROM users\n" +
	"```\n"

func TestExtract(t *testing.T) {
	blocks, err := Extract([]byte(document))
	assert.NoError(t, err)
	assert.Equal(t, []Block{
		{Heading: "Active users", SQL: "SELECT id, name\nFROM users\nWHERE active = true", Line: 6},
		{Heading: "Count", SQL: "SELECT COUNT(*) FROM users", Line: 18},
	}, blocks)
}

func TestFirst(t *testing.T) {
	block, err := First([]byte(document))
	assert.NoError(t, err)
	assert.Equal(t, "Active users", block.Heading)

	_, err = First([]byte("# Nothing here\n\nJust text.\n"))
	assert.True(t, errors.Is(err, ErrNoSQLBlock))
}

func TestUnlabeledBlockIsIgnored(t *testing.T) {
	blocks, err := Extract([]byte("```\nSELECT 1\n```\n"))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(blocks))
}
