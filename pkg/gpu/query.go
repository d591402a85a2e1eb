package gpu

import (
	"net/url"
	"strconv"
	"strings"
)

// Query accumulates request parameters in insertion order. The GPU API
// expects multi-valued filters as repeated bracketed keys
// (documentType[]=PLU&documentType[]=CC); comma-joined or indexed notation
// is silently ignored upstream, so encoding lives here and nowhere else.
type Query struct {
	pairs []pair
}

type pair struct {
	key    string
	value  string
	multi  bool
	values []string
}

// Set adds a scalar string parameter. Empty values are skipped.
func (q *Query) Set(key, value string) *Query {
	if value == "" {
		return q
	}
	q.pairs = append(q.pairs, pair{key: key, value: value})
	return q
}

// SetInt adds an integer parameter.
func (q *Query) SetInt(key string, value int) *Query {
	q.pairs = append(q.pairs, pair{key: key, value: strconv.Itoa(value)})
	return q
}

// SetFloat adds a float parameter.
func (q *Query) SetFloat(key string, value float64) *Query {
	q.pairs = append(q.pairs, pair{key: key, value: strconv.FormatFloat(value, 'f', -1, 64)})
	return q
}

// SetBool adds a boolean parameter as "true"/"false".
func (q *Query) SetBool(key string, value bool) *Query {
	q.pairs = append(q.pairs, pair{key: key, value: strconv.FormatBool(value)})
	return q
}

// SetList adds a multi-valued parameter rendered as one key[]=v pair per
// element, preserving element order. A nil or empty slice contributes
// nothing.
func (q *Query) SetList(key string, values []string) *Query {
	if len(values) == 0 {
		return q
	}
	q.pairs = append(q.pairs, pair{key: key, multi: true, values: values})
	return q
}

// Encode renders the accumulated parameters as a query string without the
// leading "?". Keys and values are percent-encoded; the brackets of
// multi-valued keys are emitted literally.
func (q *Query) Encode() string {
	if q == nil || len(q.pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range q.pairs {
		if p.multi {
			for _, v := range p.values {
				if b.Len() > 0 {
					b.WriteByte('&')
				}
				b.WriteString(url.QueryEscape(p.key))
				b.WriteString("[]=")
				b.WriteString(url.QueryEscape(v))
			}
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
