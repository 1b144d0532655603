// Package search finds query matches in lines of document text. It supports
// multiple strategies (substring, regex) through a common Provider interface.
package search

import "strings"

// RegexPrefix selects the regex provider in ForQuery.
const RegexPrefix = "re:"

// Match is one occurrence in a line, as rune offsets [Start, End).
type Match struct {
	Start, End int
}

// Provider defines the interface for search providers.
type Provider interface {
	// FindAll returns the non-overlapping matches of query in line, left to right.
	FindAll(line, query string) []Match

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{CaseInsensitive: true}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ForQuery picks the provider for a user query and returns the query it
// should be run with: "re:" queries are regular expressions, anything else
// is a plain substring.
func ForQuery(query string, opts ...Option) (Provider, string) {
	if rest, ok := strings.CutPrefix(query, RegexPrefix); ok {
		return NewRegexProvider(opts...), rest
	}
	return NewSubstringProvider(opts...), query
}

// runeOffset converts byte offset off in s to a rune offset.
func runeOffset(s string, off int) int {
	return len([]rune(s[:off]))
}
