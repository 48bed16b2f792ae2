package twitter

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query is anything that can render itself as a URL query string.
// Params, RawQuery and url.Values all satisfy it.
type Query interface {
	Encode() string
}

// RawQuery is a query string that has already been built by the caller.
type RawQuery string

// Encode returns the query unchanged.
func (q RawQuery) Encode() string { return string(q) }

// Param is a single query field. A scalar is a one-element Values slice.
type Param struct {
	Key    string
	Values []string
}

// Params is an ordered set of query fields. Sequences are comma-joined on
// encoding and fields are joined with "&". A field with no values is kept
// (so Has reports it) but omitted from the encoded query.
type Params []Param

// Set replaces the values of key, appending the field if it is new.
func (p *Params) Set(key string, values ...string) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Values = values
			return
		}
	}
	*p = append(*p, Param{Key: key, Values: values})
}

// SetDefault sets key only if it is not already present.
func (p *Params) SetDefault(key string, values ...string) {
	if !p.Has(key) {
		p.Set(key, values...)
	}
}

// Has reports whether key is present, even with no values.
func (p Params) Has(key string) bool {
	for _, f := range p {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Get returns the values of key.
func (p Params) Get(key string) []string {
	for _, f := range p {
		if f.Key == key {
			return f.Values
		}
	}
	return nil
}

// Clone returns a copy that can be modified without affecting p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for i, f := range p {
		out[i] = Param{Key: f.Key, Values: append([]string(nil), f.Values...)}
	}
	return out
}

// Encode renders the params as key=v1,v2&key2=v3. Values are escaped
// individually so the separating commas stay literal.
func (p Params) Encode() string {
	var b strings.Builder
	for _, f := range p {
		if len(f.Values) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteByte('=')
		b.WriteString(joinEscaped(f.Values))
	}
	return b.String()
}

func joinEscaped(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	return strings.Join(escaped, ",")
}

// SearchOption customizes a recent-search request.
type SearchOption func(*Params)

// WithMaxResults sets max_results (10..100 per the API).
func WithMaxResults(n int) SearchOption {
	return func(p *Params) { p.Set("max_results", strconv.Itoa(n)) }
}

// WithStartTime sets start_time in RFC 3339.
func WithStartTime(t time.Time) SearchOption {
	return func(p *Params) { p.Set("start_time", t.UTC().Format(time.RFC3339)) }
}

// WithEndTime sets end_time in RFC 3339.
func WithEndTime(t time.Time) SearchOption {
	return func(p *Params) { p.Set("end_time", t.UTC().Format(time.RFC3339)) }
}

// WithExpansions overrides the default expansions. Passing none disables them.
func WithExpansions(expansions ...string) SearchOption {
	return func(p *Params) { p.Set("expansions", expansions...) }
}

// WithUserFields overrides the default user.fields. Passing none disables them.
func WithUserFields(fields ...string) SearchOption {
	return func(p *Params) { p.Set("user.fields", fields...) }
}

// WithTweetFields sets tweet.fields.
func WithTweetFields(fields ...string) SearchOption {
	return func(p *Params) { p.Set("tweet.fields", fields...) }
}

// WithMediaFields sets media.fields.
func WithMediaFields(fields ...string) SearchOption {
	return func(p *Params) { p.Set("media.fields", fields...) }
}

// SearchParams applies opts to an empty Params.
func SearchParams(opts ...SearchOption) Params {
	var p Params
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
