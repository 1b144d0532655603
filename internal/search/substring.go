package search

import (
	"strings"
)

// SubstringProvider provides substring-based search.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// FindAll returns every occurrence of query in line.
func (p *SubstringProvider) FindAll(line, query string) []Match {
	if query == "" {
		return nil
	}
	if p.opts.CaseInsensitive {
		line = strings.ToLower(line)
		query = strings.ToLower(query)
	}

	var matches []Match
	for off := 0; off < len(line); {
		idx := strings.Index(line[off:], query)
		if idx < 0 {
			break
		}
		start := off + idx
		end := start + len(query)
		matches = append(matches, Match{Start: runeOffset(line, start), End: runeOffset(line, end)})
		off = end
	}
	return matches
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return "substring"
}
