package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 30000)

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter_than_cap", "hello", 100, "hello"},
		{"exactly_cap", "abcde", 5, "abcde"},
		{"suffix_cut", "abcdef", 5, "abcde"},
		{"zero_cap_disables", "abcdef", 0, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}

	// The cap is a plain prefix of the untruncated render.
	out := truncate(long, DefaultMaxChars)
	require.Len(t, out, DefaultMaxChars)
	assert.Equal(t, long[:DefaultMaxChars], out)
}

func TestPrettyJSON(t *testing.T) {
	out, err := prettyJSON(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}

func TestField(t *testing.T) {
	var b strings.Builder
	field(&b, "Type", "COM")
	field(&b, "Skipped", "")
	assert.Equal(t, "- **Type**: COM\n", b.String())
}

func TestTableCell(t *testing.T) {
	assert.Equal(t, "a\\|b c", tableCell("a|b\nc"))
}

func TestPropertyBulletsSortedAndNilSkipped(t *testing.T) {
	var b strings.Builder
	propertyBullets(&b, map[string]any{
		"typezone": "U",
		"libelle":  "UA",
		"datvalid": nil,
	})
	assert.Equal(t, "- **libelle**: UA\n- **typezone**: U\n", b.String())
}
