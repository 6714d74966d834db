package formatter

import (
	"testing"

	"github.com/faneaatiku/cosmos-json/internal/models"
	"github.com/faneaatiku/cosmos-json/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Indented(t *testing.T) {
	input := `{"z": 1, "a": [true, null, {"k": "v"}], "e": {}, "l": []}`
	root, err := parser.ParseString(input)
	require.NoError(t, err)

	expectedOutput := `{
  "z": 1,
  "a": [
    true,
    null,
    {
      "k": "v"
    }
  ],
  "e": {},
  "l": []
}`

	assert.Equal(t, expectedOutput, NewFormatter().Format(root))
}

func TestFormat_CustomIndent(t *testing.T) {
	root, err := parser.ParseString(`{"a": [1]}`)
	require.NoError(t, err)

	f := &Formatter{Indent: "\t"}
	assert.Equal(t, "{\n\t\"a\": [\n\t\t1\n\t]\n}", f.Format(root))
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		input    models.Value
		expected string
	}{
		{"null", models.Null{}, "null"},
		{"nil", nil, "null"},
		{"bool", models.Bool(false), "false"},
		{"number literal kept", models.Number("1.50e3"), "1.50e3"},
		{"string escaping", models.String("a\"b\\c\n<tag>"), `"a\"b\\c\n<tag>"`},
		{"unicode", models.String("日本"), `"日本"`},
		{"empty array", models.Array{}, "[]"},
		{"nested", models.NewObject(
			models.Member{Key: "b", Value: models.Array{models.Number("1"), models.String("x")}},
			models.Member{Key: "a", Value: models.NewObject()},
		), `{"b":[1,"x"],"a":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.input))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	input := `{"tx":{"body":{"messages":[{"@type":"/cosmos.bank.v1beta1.MsgSend","amount":[{"amount":"10","denom":"uatom"}]}]},"memo":"héllo"}}`
	root, err := parser.ParseString(input)
	require.NoError(t, err)

	assert.Equal(t, input, Compact(root))

	reparsed, err := parser.ParseString(NewFormatter().Format(root))
	require.NoError(t, err)
	assert.True(t, models.Equal(root, reparsed))
}
