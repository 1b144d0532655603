package search

import (
	"regexp"
	"sync"
)

// RegexProvider provides regex-based search.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// FindAll returns the matches of the pattern in line. An invalid pattern,
// or one that only matches the empty string, matches nothing.
func (p *RegexProvider) FindAll(line, query string) []Match {
	if query == "" {
		return nil
	}
	re, err := p.Compile(query)
	if err != nil {
		return nil
	}

	var matches []Match
	for _, loc := range re.FindAllStringIndex(line, -1) {
		if loc[0] == loc[1] {
			continue
		}
		matches = append(matches, Match{Start: runeOffset(line, loc[0]), End: runeOffset(line, loc[1])})
	}
	return matches
}

// Compile returns the compiled pattern, using the cache.
func (p *RegexProvider) Compile(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()

	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()

	return re, nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return "regex"
}
