// Package toc defines table-of-contents nodes, link destinations and the
// navigation targets they resolve to.
package toc

import (
	"fmt"
	"image"
)

// DestKind identifies what following a destination does.
type DestKind int

const (
	// DestNone marks a node or link without an action.
	DestNone DestKind = iota
	// DestScrollTo scrolls to a page and point inside the current document.
	DestScrollTo
	// DestLaunchURL opens an external URL.
	DestLaunchURL
	// DestLaunchFile opens a file, relative paths resolved against the document directory.
	DestLaunchFile
	// DestNamed resolves a named destination.
	DestNamed
	// DestNextPage moves one page forward.
	DestNextPage
	// DestPrevPage moves one page back.
	DestPrevPage
	// DestFirstPage moves to the first page.
	DestFirstPage
	// DestLastPage moves to the last page.
	DestLastPage
)

var destKindNames = map[DestKind]string{
	DestNone:       "none",
	DestScrollTo:   "scroll",
	DestLaunchURL:  "url",
	DestLaunchFile: "file",
	DestNamed:      "named",
	DestNextPage:   "next-page",
	DestPrevPage:   "prev-page",
	DestFirstPage:  "first-page",
	DestLastPage:   "last-page",
}

// String returns the manifest name of the kind.
func (k DestKind) String() string {
	if name, ok := destKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DestKind(%d)", int(k))
}

// ParseDestKind converts a manifest name into a DestKind.
func ParseDestKind(s string) (DestKind, error) {
	for k, name := range destKindNames {
		if name == s {
			return k, nil
		}
	}
	return DestNone, fmt.Errorf("unknown destination kind %q", s)
}

// Destination is an unresolved link or TOC target.
type Destination struct {
	Kind DestKind
	// Page is 1-based and only meaningful for DestScrollTo.
	Page  int
	Point image.Point
	// Value holds the URL, file path or destination name.
	Value string
}

// Node is one table-of-contents entry. Nodes are read-only once loaded.
type Node struct {
	Name     string
	Dest     *Destination
	Children []*Node
}

// Walk visits n and its descendants in pre-order until visit returns false.
// It reports whether the walk ran to completion.
func (n *Node) Walk(visit func(node *Node, depth int) bool) bool {
	return n.walk(visit, 0)
}

func (n *Node) walk(visit func(*Node, int) bool, depth int) bool {
	if n == nil {
		return true
	}
	if !visit(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(visit, depth+1) {
			return false
		}
	}
	return true
}

// Target is a resolved navigation destination: either a page/point inside
// the current document or an external locator.
type Target struct {
	Page     int
	Point    image.Point
	External string
}

// IsExternal reports whether the target leaves the current document.
func (t Target) IsExternal() bool {
	return t.External != ""
}

func (t Target) String() string {
	if t.IsExternal() {
		return t.External
	}
	return fmt.Sprintf("page %d (%d,%d)", t.Page, t.Point.X, t.Point.Y)
}
