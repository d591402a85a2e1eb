package gpu

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEncode(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Query
		want  string
	}{
		{
			name:  "empty",
			build: func() *Query { return &Query{} },
			want:  "",
		},
		{
			name: "scalar",
			build: func() *Query {
				q := &Query{}
				return q.Set("title", "Lyon")
			},
			want: "title=Lyon",
		},
		{
			name: "empty_scalar_omitted",
			build: func() *Query {
				q := &Query{}
				return q.Set("title", "").Set("name", "69123")
			},
			want: "name=69123",
		},
		{
			name: "array_bracket_pairs_in_order",
			build: func() *Query {
				q := &Query{}
				return q.SetList("documentType", []string{"PLU", "CC", "POS"})
			},
			want: "documentType[]=PLU&documentType[]=CC&documentType[]=POS",
		},
		{
			name: "empty_array_omitted",
			build: func() *Query {
				q := &Query{}
				return q.SetList("type", nil).Set("rnu", "true")
			},
			want: "rnu=true",
		},
		{
			name: "insertion_order_preserved",
			build: func() *Query {
				q := &Query{}
				q.Set("b", "2")
				q.SetList("a", []string{"x"})
				q.SetInt("c", 3)
				return q
			},
			want: "b=2&a[]=x&c=3",
		},
		{
			name: "bool_and_numbers",
			build: func() *Query {
				q := &Query{}
				q.SetBool("approved", true)
				q.SetInt("limit", 10)
				q.SetFloat("lon", 4.835)
				return q
			},
			want: "approved=true&limit=10&lon=4.835",
		},
		{
			name: "reserved_characters_escaped",
			build: func() *Query {
				q := &Query{}
				return q.Set("title", "Aix-en-Provence & Pays d'Aix")
			},
			want: "title=Aix-en-Provence+%26+Pays+d%27Aix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().Encode())
		})
	}
}

func TestQueryEncodeNil(t *testing.T) {
	var q *Query
	assert.Equal(t, "", q.Encode())
}

func TestQueryRoundTrip(t *testing.T) {
	q := &Query{}
	q.Set("title", "Saint-Étienne / Loire")
	q.SetList("type", []string{"COM", "EPCI"})

	parsed, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)

	assert.Equal(t, "Saint-Étienne / Loire", parsed.Get("title"))
	assert.Equal(t, []string{"COM", "EPCI"}, parsed["type[]"])
}
