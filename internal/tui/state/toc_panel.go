package state

import (
	"github.com/cristianoliveira/docview/internal/toc"
)

// tocEntry is one visible row of the TOC panel.
type tocEntry struct {
	node  *toc.Node
	depth int
}

// tocPanel is the flattened TOC of the displayed document with a cursor.
type tocPanel struct {
	entries []tocEntry
	cursor  int
	top     int
}

func newTocPanel(root *toc.Node) tocPanel {
	var p tocPanel
	root.Walk(func(node *toc.Node, depth int) bool {
		if depth > 0 {
			p.entries = append(p.entries, tocEntry{node: node, depth: depth - 1})
		}
		return true
	})
	return p
}

func (p *tocPanel) move(delta, height int) {
	if len(p.entries) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.entries)-1)
	p.scrollTo(p.cursor, height)
}

func (p *tocPanel) scrollTo(idx, height int) {
	if idx < p.top {
		p.top = idx
	}
	if height > 0 && idx >= p.top+height {
		p.top = idx - height + 1
	}
}

// selected returns the entry under the cursor.
func (p *tocPanel) selected() (tocEntry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return tocEntry{}, false
	}
	return p.entries[p.cursor], true
}

// at returns the entry shown on visible panel row y.
func (p *tocPanel) at(y int) (int, bool) {
	idx := p.top + y
	if y < 0 || idx >= len(p.entries) {
		return 0, false
	}
	return idx, true
}
