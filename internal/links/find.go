// Package links resolves named destinations and link destinations into
// navigation targets.
package links

import (
	"strings"

	"github.com/cristianoliveira/docview/internal/toc"
)

// FindTocItem returns the first node under root, in pre-order, whose name
// matches name and that has a destination. Exact matching is case-sensitive
// equality; partial matching is a case-insensitive substring test after
// collapsing whitespace. The tree is never modified.
func FindTocItem(root *toc.Node, name string, partial bool) *toc.Node {
	if root == nil {
		return nil
	}
	match := exactMatch
	query := name
	if partial {
		match = partialMatch
		query = normalize(name)
		if query == "" {
			return nil
		}
	}

	var found *toc.Node
	root.Walk(func(n *toc.Node, _ int) bool {
		if n.Dest == nil || n.Dest.Kind == toc.DestNone {
			return true
		}
		if match(n.Name, query) {
			found = n
			return false
		}
		return true
	})
	return found
}

func exactMatch(nodeName, query string) bool {
	return nodeName == query
}

func partialMatch(nodeName, query string) bool {
	return strings.Contains(normalize(nodeName), query)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
