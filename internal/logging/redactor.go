package logging

import (
	"net/url"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// redactor scrubs sensitive values from log key-value pairs.
// Keys naming secrets are blanked; link targets keep their location but lose
// credentials and query values.
type redactor struct {
	sensitiveWords map[string]bool
	locatorWords   map[string]bool
}

func newRedactor() *redactor {
	return &redactor{
		sensitiveWords: wordSet("secret", "password", "token", "key", "auth", "credential"),
		locatorWords:   wordSet("url", "target", "locator", "link"),
	}
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// redact returns a copy of pairs ([key1, value1, key2, value2, ...]) with
// sensitive values replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		switch {
		case r.hasSegment(key, r.sensitiveWords):
			result[i+1] = redacted
		case r.hasSegment(key, r.locatorWords):
			if s, ok := result[i+1].(string); ok {
				result[i+1] = redactLocator(s)
			}
		}
	}
	return result
}

// hasSegment reports whether key contains one of words as a separate segment.
func (r *redactor) hasSegment(key string, words map[string]bool) bool {
	for _, part := range nonAlphanumeric.Split(strings.ToLower(key), -1) {
		if words[part] {
			return true
		}
	}
	return false
}

// redactLocator strips user info and query values from URL-shaped strings.
// Plain file paths are returned unchanged.
func redactLocator(value string) string {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || (u.Opaque != "" && u.RawQuery == "") {
		return value
	}
	if u.User != nil {
		u.User = url.User(redacted)
	}
	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			q.Set(k, redacted)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}
