package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		line  string
		query string
		want  []Match
	}{
		{name: "case insensitive by default", line: "Field guide, field notes", query: "FIELD",
			want: []Match{{0, 5}, {13, 18}}},
		{name: "case sensitive", opts: []Option{WithCaseInsensitive(false)}, line: "Field guide, field notes", query: "field",
			want: []Match{{13, 18}}},
		{name: "non overlapping", line: "aaaa", query: "aa", want: []Match{{0, 2}, {2, 4}}},
		{name: "rune offsets", line: "café au lait", query: "au", want: []Match{{5, 7}}},
		{name: "empty query", line: "anything", query: ""},
		{name: "no match", line: "anything", query: "zzz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSubstringProvider(tt.opts...)
			assert.Equal(t, tt.want, p.FindAll(tt.line, tt.query))
		})
	}
}

func TestRegexProvider(t *testing.T) {
	p := NewRegexProvider()
	assert.Equal(t, "regex", p.Name())

	assert.Equal(t, []Match{{4, 13}}, p.FindAll("See Chapter 1 for", `chapter \d`))
	assert.Nil(t, p.FindAll("See Chapter 1 for", "["), "invalid pattern matches nothing")
	assert.Nil(t, p.FindAll("abc", "x*"), "empty matches are dropped")

	sensitive := NewRegexProvider(WithCaseInsensitive(false))
	assert.Nil(t, sensitive.FindAll("See Chapter 1 for", `chapter \d`))
}

func TestRegexProviderCache(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)

	first, err := p.Compile(`a+`)
	require.NoError(t, err)
	second, err := p.Compile(`a+`)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = p.Compile("(")
	assert.Error(t, err)
	assert.Len(t, p.cache, 1)
}

func TestForQuery(t *testing.T) {
	p, q := ForQuery("re:^Notes")
	assert.Equal(t, "regex", p.Name())
	assert.Equal(t, "^Notes", q)

	p, q = ForQuery("notes")
	assert.Equal(t, "substring", p.Name())
	assert.Equal(t, "notes", q)
}
