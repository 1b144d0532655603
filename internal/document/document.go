// Package document loads a document manifest: a TOML description of the
// pages, links, table of contents, named destinations and page labels of a
// document. It stands in for a real document engine in the terminal host.
package document

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cristianoliveira/docview/internal/search"
	"github.com/cristianoliveira/docview/internal/toc"
	"github.com/pelletier/go-toml/v2"
)

// Page is one page of text. Page coordinates are (column, line).
type Page struct {
	Label string
	Lines []string
	Links []Link
}

// Link is a clickable region on a page.
type Link struct {
	Rect image.Rectangle
	Dest *toc.Destination
}

// Document is a loaded manifest. It is read-only after loading.
type Document struct {
	Title  string
	path   string
	dir    string
	pages  []Page
	root   *toc.Node
	named  map[string]*toc.Destination
	labels map[string]int
}

type manifest struct {
	Title string               `toml:"title"`
	Pages []pageEntry          `toml:"pages"`
	Toc   []tocEntry           `toml:"toc"`
	Dests map[string]destEntry `toml:"dests"`
}

type pageEntry struct {
	Label string      `toml:"label"`
	Text  string      `toml:"text"`
	Links []linkEntry `toml:"links"`
}

type destEntry struct {
	Kind  string `toml:"kind"`
	Page  int    `toml:"page"`
	X     int    `toml:"x"`
	Y     int    `toml:"y"`
	Value string `toml:"value"`
}

type linkEntry struct {
	destEntry
	Line int `toml:"line"`
	Col  int `toml:"col"`
	Len  int `toml:"len"`
}

type tocEntry struct {
	destEntry
	Name     string     `toml:"name"`
	Children []tocEntry `toml:"children"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	doc, err := Parse(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("document: %s: %w", path, err)
	}
	doc.path = abs
	return doc, nil
}

// Parse parses manifest data. dir is used to resolve relative file links.
func Parse(data []byte, dir string) (*Document, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Pages) == 0 {
		return nil, fmt.Errorf("manifest has no pages")
	}

	doc := &Document{
		Title:  m.Title,
		dir:    dir,
		named:  make(map[string]*toc.Destination, len(m.Dests)),
		labels: make(map[string]int, len(m.Pages)),
	}
	for i, p := range m.Pages {
		label := p.Label
		if label == "" {
			label = strconv.Itoa(i + 1)
		}
		if _, dup := doc.labels[label]; !dup {
			doc.labels[label] = i + 1
		}
		doc.pages = append(doc.pages, Page{Label: label, Lines: splitLines(p.Text)})
	}
	for i, p := range m.Pages {
		for j, l := range p.Links {
			dest, err := doc.destination(l.destEntry)
			if err != nil {
				return nil, fmt.Errorf("page %d link %d: %w", i+1, j+1, err)
			}
			width := max(l.Len, 1)
			doc.pages[i].Links = append(doc.pages[i].Links, Link{
				Rect: image.Rect(l.Col, l.Line, l.Col+width, l.Line+1),
				Dest: dest,
			})
		}
	}

	for name, d := range m.Dests {
		dest, err := doc.destination(d)
		if err != nil {
			return nil, fmt.Errorf("named destination %q: %w", name, err)
		}
		doc.named[name] = dest
	}

	if len(m.Toc) == 0 {
		return doc, nil
	}
	root := &toc.Node{}
	for _, e := range m.Toc {
		child, err := doc.tocNode(e)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	doc.root = root
	return doc, nil
}

func (d *Document) tocNode(e tocEntry) (*toc.Node, error) {
	node := &toc.Node{Name: e.Name}
	if e.Kind != "" || e.Page != 0 || e.Value != "" {
		dest, err := d.destination(e.destEntry)
		if err != nil {
			return nil, fmt.Errorf("toc entry %q: %w", e.Name, err)
		}
		node.Dest = dest
	}
	for _, c := range e.Children {
		child, err := d.tocNode(c)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// destination converts a manifest entry. An empty kind means "scroll".
func (d *Document) destination(e destEntry) (*toc.Destination, error) {
	kind := toc.DestScrollTo
	if e.Kind != "" {
		k, err := toc.ParseDestKind(e.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	switch kind {
	case toc.DestScrollTo:
		if e.Page < 1 || e.Page > len(d.pages) {
			return nil, fmt.Errorf("page %d out of range", e.Page)
		}
	case toc.DestLaunchURL, toc.DestLaunchFile, toc.DestNamed:
		if e.Value == "" {
			return nil, fmt.Errorf("%s destination needs a value", kind)
		}
	}
	return &toc.Destination{Kind: kind, Page: e.Page, Point: image.Pt(e.X, e.Y), Value: e.Value}, nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// TocRoot returns the synthetic root of the table of contents.
func (d *Document) TocRoot() *toc.Node { return d.root }

func (d *Document) NamedDest(name string) (*toc.Destination, bool) {
	dest, ok := d.named[name]
	return dest, ok
}

func (d *Document) PageByLabel(label string) (int, bool) {
	n, ok := d.labels[label]
	return n, ok
}

func (d *Document) PageCount() int { return len(d.pages) }
func (d *Document) Dir() string    { return d.dir }

// Path is the absolute manifest path, empty for parsed data.
func (d *Document) Path() string { return d.path }

// Page returns the 1-based page n.
func (d *Document) Page(n int) (Page, bool) {
	if n < 1 || n > len(d.pages) {
		return Page{}, false
	}
	return d.pages[n-1], true
}

// LinkAt returns the link covering pt on page n.
func (d *Document) LinkAt(n int, pt image.Point) (*toc.Destination, bool) {
	page, ok := d.Page(n)
	if !ok {
		return nil, false
	}
	for _, l := range page.Links {
		if pt.In(l.Rect) {
			return l.Dest, true
		}
	}
	return nil, false
}

// Hit is one search match.
type Hit struct {
	Page int
	Rect image.Rectangle
}

// Search finds case-insensitive occurrences of query. A query starting with
// "re:" is a regular expression. It stops early with ctx.Err() when ctx is
// canceled.
func (d *Document) Search(ctx context.Context, query string) ([]Hit, error) {
	p, q := search.ForQuery(query)
	return d.SearchWith(ctx, p, q)
}

// SearchWith runs query through p over every page line.
func (d *Document) SearchWith(ctx context.Context, p search.Provider, query string) ([]Hit, error) {
	if query == "" {
		return nil, nil
	}
	var hits []Hit
	for i, page := range d.pages {
		if err := ctx.Err(); err != nil {
			return hits, err
		}
		for y, line := range page.Lines {
			for _, m := range p.FindAll(line, query) {
				hits = append(hits, Hit{Page: i + 1, Rect: image.Rect(m.Start, y, m.End, y+1)})
			}
		}
	}
	return hits, nil
}
