package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/sqltree/processor"
	"github.com/shibukawa/sqltree/tree"
)

func sampleTree(t *testing.T, sql string) tree.Node {
	t.Helper()

	tokens, err := processor.NewQueryProcessor().Parse(sql)
	assert.NoError(t, err)

	nodes, err := processor.NewTokenProcessor().Process(tokens)
	assert.NoError(t, err)

	return tree.Root(sql, nodes)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", JSON},
		{"YAML", YAML},
		{"yml", YAML},
		{"Xml", XML},
	}

	for _, tt := range tests {
		format, err := ParseFormat(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, format)
	}

	_, err := ParseFormat("csv")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestRoundTrip(t *testing.T) {
	node := sampleTree(t, "SELECT name, COUNT(*) AS c FROM (SELECT name FROM People) AS p WHERE name LIKE 'A%'")

	for _, format := range []Format{JSON, YAML, XML} {
		for _, pretty := range []bool{false, true} {
			var buf bytes.Buffer
			assert.NoError(t, Write(&buf, node, format, pretty))

			decoded, err := Read(buf.Bytes(), format)
			assert.NoError(t, err)
			assert.True(t, node.Equal(decoded), string(format))
		}
	}
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, sampleTree(t, "SELECT 1"), JSON, false))

	expected := `{"type":"ROOT","value":"SELECT 1","is_group":true,"children":[` +
		`{"type":"DML","value":"SELECT","is_group":false},` +
		`{"type":"Whitespace","value":" ","is_group":false},` +
		`{"type":"Number","value":"1","is_group":false}]}` + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteXMLShape(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, sampleTree(t, "SELECT a"), XML, false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<node type="ROOT" is_group="true" value="SELECT a">`)
	assert.Contains(t, out, `<node type="Name" is_group="false" value="a"/>`)
}

func TestWriteTokens(t *testing.T) {
	tokens := []string{"SELECT", " ", "*"}

	var buf bytes.Buffer
	assert.NoError(t, WriteTokens(&buf, tokens, JSON, false))
	assert.Equal(t, `["SELECT"," ","*"]`+"\n", buf.String())

	buf.Reset()
	assert.NoError(t, WriteTokens(&buf, tokens, XML, false))
	assert.Contains(t, buf.String(), "<tokens><token>SELECT</token><token> </token><token>*</token></tokens>")

	buf.Reset()
	assert.NoError(t, WriteTokens(&buf, tokens, YAML, false))
	assert.Contains(t, buf.String(), "- SELECT")
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, tree.Root("", nil), Format("csv"), false)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Read([]byte("{}"), Format("csv"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestReadXMLErrors(t *testing.T) {
	_, err := Read([]byte(`<tokens/>`), XML)
	assert.True(t, errors.Is(err, ErrNoNodeElement))

	_, err = Read([]byte(`<node type="ROOT" is_group="maybe"/>`), XML)
	assert.True(t, errors.Is(err, ErrInvalidAttribute))
}
