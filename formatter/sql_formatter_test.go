package formatter

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/sqltree/testhelper"
	tok "github.com/shibukawa/sqltree/tokenizer"
)

func TestSQLFormatter_Format(t *testing.T) {
	formatter := NewSQLFormatter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Basic SELECT statement",
			input:    `select name, age from People where age > 30`,
			expected: "SELECT name, age\nFROM People\nWHERE age > 30",
		},
		{
			name:     "Whitespace is collapsed",
			input:    "select   id ,name\n\tfrom users",
			expected: "SELECT id, name\nFROM users",
		},
		{
			name:     "Comma gets a space",
			input:    "select id,name from users",
			expected: "SELECT id, name\nFROM users",
		},
		{
			name:     "SELECT with JOIN",
			input:    `select u.id, p.title from users u left outer join posts p on u.id = p.user_id`,
			expected: "SELECT u.id, p.title\nFROM users u\nLEFT OUTER JOIN posts p ON u.id = p.user_id",
		},
		{
			name:     "WHERE conditions on their own lines",
			input:    `select * from users where age > 18 and status = 'active' or premium = true`,
			expected: "SELECT *\nFROM users\nWHERE age > 18\n  AND status = 'active'\n  OR premium = TRUE",
		},
		{
			name:     "BETWEEN keeps its AND",
			input:    `select * from t where a between 1 and 2 and b = 3`,
			expected: "SELECT *\nFROM t\nWHERE a BETWEEN 1 AND 2\n  AND b = 3",
		},
		{
			name:     "Subquery stays inline",
			input:    `select * from (select id from t where x = 1) as sub order by id`,
			expected: "SELECT *\nFROM (SELECT id FROM t WHERE x = 1) AS sub\nORDER BY id",
		},
		{
			name:     "Parentheses are tightened",
			input:    `select count( * ) from t group by a having count(*) > 1 limit 10`,
			expected: "SELECT count(*)\nFROM t\nGROUP BY a\nHAVING count(*) > 1\nLIMIT 10",
		},
		{
			name:     "UPDATE",
			input:    `update users set name = 'x' where id = 1 returning id`,
			expected: "UPDATE users\nSET name = 'x'\nWHERE id = 1\nRETURNING id",
		},
		{
			name:     "INSERT",
			input:    `insert into t (a, b) values (1, 2)`,
			expected: "INSERT INTO t (a, b)\nVALUES (1, 2)",
		},
		{
			name:     "UNION",
			input:    `select a from t union all select a from u`,
			expected: "SELECT a\nFROM t\nUNION ALL\nSELECT a\nFROM u",
		},
		{
			name:     "Line comment keeps its newline",
			input:    "select a -- first\n, b from t",
			expected: "SELECT a -- first\n, b\nFROM t",
		},
		{
			name:     "Multiple statements",
			input:    "select 1; select 2;",
			expected: "SELECT 1;\n\nSELECT 2;",
		},
		{
			name:     "Strings and identifiers keep their case",
			input:    `select "Name" from People where note = 'select from'`,
			expected: "SELECT \"Name\"\nFROM People\nWHERE note = 'select from'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatter.Format(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLFormatter_ReportQuery(t *testing.T) {
	input := "select u.id, count(*) as posts from users u left join posts p on u.id = p.user_id " +
		"where u.active = true and p.deleted = false group by u.id order by posts desc limit 5"

	expected := testhelper.TrimIndent(t, `
		SELECT u.id, count(*) AS posts
		FROM users u
		LEFT JOIN posts p ON u.id = p.user_id
		WHERE u.active = TRUE
		  AND p.deleted = FALSE
		GROUP BY u.id
		ORDER BY posts DESC
		LIMIT 5`)

	result, err := Format(input, DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestSQLFormatter_Idempotent(t *testing.T) {
	inputs := []string{
		"select name, age from People where age > 30",
		"select * from users where age > 18 and status = 'active' or premium = true",
		"select a -- first\n, b from t",
		"select u.id from users u join posts p on u.id = p.user_id order by u.id desc",
	}

	for _, input := range inputs {
		once, err := Format(input, DefaultOptions())
		assert.NoError(t, err)

		twice, err := Format(once, DefaultOptions())
		assert.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestSQLFormatter_KeywordCasing(t *testing.T) {
	tests := []struct {
		keywordCase KeywordCase
		expected    string
	}{
		{Upper, "SELECT id FROM users WHERE active = TRUE"},
		{Lower, "select id from users where active = true"},
		{Capitalize, "Select id From users Where active = True"},
		{Preserve, "Select id from users WHERE active = true"},
	}

	for _, tt := range tests {
		t.Run(string(tt.keywordCase), func(t *testing.T) {
			result, err := Format("Select id from users WHERE active = true", Options{
				KeywordCase:     tt.keywordCase,
				StripWhitespace: true,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLFormatter_PreserveWhitespace(t *testing.T) {
	input := "select  id\n  from users"

	result, err := Format(input, Options{KeywordCase: Upper})
	assert.NoError(t, err)
	assert.Equal(t, "SELECT  id\n  FROM users", result)
}

func TestSQLFormatter_IndentWidth(t *testing.T) {
	result, err := Format("select a from t where x = 1 and y = 2", Options{
		Reindent:    true,
		KeywordCase: Upper,
		IndentWidth: 4,
	})
	assert.NoError(t, err)
	assert.Equal(t, "SELECT a\nFROM t\nWHERE x = 1\n    AND y = 2", result)
}

func TestSQLFormatter_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"unterminated string", "select 'abc", tok.ErrUnterminatedString},
		{"unterminated comment", "select /* abc", tok.ErrUnterminatedComment},
		{"unmatched open", "select (a from t", ErrUnmatchedOpenParenthesis},
		{"unmatched close", "select a) from t", ErrUnmatchedCloseParenthesis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSQLFormatter().Format(tt.input)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestParseKeywordCase(t *testing.T) {
	kc, err := ParseKeywordCase("UPPER")
	assert.NoError(t, err)
	assert.Equal(t, Upper, kc)

	kc, err = ParseKeywordCase("")
	assert.NoError(t, err)
	assert.Equal(t, Preserve, kc)

	_, err = ParseKeywordCase("shout")
	assert.True(t, errors.Is(err, ErrInvalidKeywordCase))
}
