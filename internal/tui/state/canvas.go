package state

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/ports"
	"github.com/cristianoliveira/docview/internal/toc"
	"github.com/cristianoliveira/docview/internal/tui/render"
)

// row is one canvas row: a page separator (line < 0) or a page line.
type row struct {
	page int
	line int
}

// Overlay holds the highlights drawn over the canvas.
type Overlay struct {
	// Selection is in canvas coordinates.
	Selection    image.Rectangle
	HasSelection bool
	// Marker rectangles are in page coordinates of MarkerPage.
	MarkerPage int
	Marker     []image.Rectangle
	Hits       []document.Hit
}

// Canvas lays the pages of the active document out as rows of text and
// implements the renderer, layout, navigation and document collaborators
// of the session over it. Canvas coordinates are (column, row) relative
// to the top-left visible cell.
type Canvas struct {
	doc    *document.Document
	window ports.WindowHost
	opener Opener
	log    logging.Logger
	styles render.Styles

	vp      viewport.Model
	width   int
	height  int
	x, y    int
	page    int
	rows    []row
	pageTop map[int]int
	maxLine int

	repaints  int
	scrollbar image.Point
	cleanedUp bool
}

var (
	_ ports.Renderer       = (*Canvas)(nil)
	_ ports.Layout         = (*Canvas)(nil)
	_ ports.NavigationSink = (*Canvas)(nil)
	_ ports.Document       = (*Canvas)(nil)
)

// NewCanvas creates a canvas showing doc in window.
func NewCanvas(window ports.WindowHost, opener Opener, log logging.Logger) *Canvas {
	c := &Canvas{
		window:  window,
		opener:  opener,
		log:     logging.OrNop(log).With("component", "canvas"),
		styles:  render.DefaultStyles(),
		vp:      viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:   defaultViewportWidth,
		height:  defaultViewportHeight,
		page:    1,
		pageTop: map[int]int{},
	}
	return c
}

// SetDocument makes doc the displayed document and moves to its first page.
func (c *Canvas) SetDocument(doc *document.Document) {
	c.doc = doc
	c.x, c.y, c.page = 0, 0, 1
	c.relayout()
	c.RequestRepaint(nil)
}

// DocumentModel returns the displayed document.
func (c *Canvas) DocumentModel() *document.Document { return c.doc }

// Resize sets the visible canvas size in cells.
func (c *Canvas) Resize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
	c.vp.Width = c.width
	c.vp.Height = c.height
	c.clampScroll()
}

// Size returns the visible canvas size.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Offset returns the scroll position of the top-left visible cell.
func (c *Canvas) Offset() image.Point { return image.Pt(c.x, c.y) }

func (c *Canvas) singlePage() bool {
	switch c.window.DisplayMode() {
	case ports.DisplayContinuous, ports.DisplayContinuousFacing, ports.DisplayContinuousBookView:
		return false
	}
	return true
}

// relayout rebuilds the row table for the current display mode.
func (c *Canvas) relayout() {
	c.rows = c.rows[:0]
	c.pageTop = map[int]int{}
	c.maxLine = 0
	if c.doc == nil {
		return
	}
	first, last := 1, c.doc.PageCount()
	if c.singlePage() {
		first, last = c.page, c.page
	}
	for n := first; n <= last; n++ {
		page, _ := c.doc.Page(n)
		c.rows = append(c.rows, row{page: n, line: -1})
		c.pageTop[n] = len(c.rows)
		lines := max(len(page.Lines), 1)
		for i := 0; i < lines; i++ {
			c.rows = append(c.rows, row{page: n, line: i})
		}
		for _, l := range page.Lines {
			c.maxLine = max(c.maxLine, len([]rune(l)))
		}
	}
	c.clampScroll()
}

func (c *Canvas) clampScroll() {
	c.y = min(max(c.y, 0), max(len(c.rows)-c.height, 0))
	c.x = min(max(c.x, 0), max(c.maxLine-c.width, 0))
}

// pageAt maps a canvas point to a page and a point in page coordinates.
func (c *Canvas) pageAt(pt image.Point) (int, image.Point, bool) {
	if pt.X < 0 || pt.Y < 0 || pt.X >= c.width || pt.Y >= c.height {
		return 0, image.Point{}, false
	}
	r := c.y + pt.Y
	if r >= len(c.rows) || c.rows[r].line < 0 {
		return 0, image.Point{}, false
	}
	return c.rows[r].page, image.Pt(c.x+pt.X, c.rows[r].line), true
}

// topPage is the page of the first visible row.
func (c *Canvas) topPage() int {
	for r := c.y; r < len(c.rows); r++ {
		if c.rows[r].line >= 0 {
			return c.rows[r].page
		}
	}
	return c.page
}

// RequestRepaint implements ports.Renderer. The canvas is redrawn on every
// frame, so requests are only counted.
func (c *Canvas) RequestRepaint(region *image.Rectangle) {
	c.repaints++
	if region != nil {
		c.log.Debug("repaint", "region", region.String())
	}
}

// Repaints returns the number of repaint requests so far.
func (c *Canvas) Repaints() int { return c.repaints }

func (c *Canvas) RequestRendering(pageNo int) {
	c.log.Debug("render page", "page", pageNo)
}

func (c *Canvas) UpdateScrollbars(canvas image.Point) { c.scrollbar = canvas }

// PageNoChanged implements ports.Renderer.
func (c *Canvas) PageNoChanged(pageNo int) {
	if c.doc == nil || pageNo < 1 || pageNo > c.doc.PageCount() {
		return
	}
	c.page = pageNo
}

func (c *Canvas) CleanUp() { c.cleanedUp = true }

// ScrollBy implements ports.Layout.
func (c *Canvas) ScrollBy(dx, dy int) {
	c.x += dx
	c.y += dy
	c.clampScroll()
	if !c.singlePage() {
		c.PageNoChanged(c.topPage())
	}
	c.UpdateScrollbars(image.Pt(c.x, c.y))
}

// LinkAt implements ports.Layout.
func (c *Canvas) LinkAt(pt image.Point) (*toc.Destination, bool) {
	page, local, ok := c.pageAt(pt)
	if !ok {
		return nil, false
	}
	return c.doc.LinkAt(page, local)
}

// OverText implements ports.Layout.
func (c *Canvas) OverText(pt image.Point) bool {
	page, local, ok := c.pageAt(pt)
	if !ok {
		return false
	}
	p, _ := c.doc.Page(page)
	if local.Y >= len(p.Lines) {
		return false
	}
	line := []rune(p.Lines[local.Y])
	return local.X < len(line) && line[local.X] != ' '
}

// PageVisible implements ports.Layout.
func (c *Canvas) PageVisible(pageNo int) bool {
	top, ok := c.pageTop[pageNo]
	if !ok {
		return false
	}
	start := top - 1
	end := top
	for end < len(c.rows) && c.rows[end].page == pageNo {
		end++
	}
	return start < c.y+c.height && end > c.y
}

// Navigate implements ports.NavigationSink.
func (c *Canvas) Navigate(target toc.Target) error {
	if c.doc == nil {
		return errors.ErrInvalidState
	}
	if target.Page < 1 || target.Page > c.doc.PageCount() {
		return errors.New(errors.KindNotFound, "navigate", target.String(), nil)
	}
	c.page = target.Page
	if c.singlePage() {
		c.relayout()
	}
	c.y = c.pageTop[target.Page] - 1 + max(target.Point.Y, 0)
	if target.Point.X < c.x || target.Point.X >= c.x+c.width {
		c.x = target.Point.X - c.width/2
	}
	c.clampScroll()
	c.RequestRepaint(nil)
	return nil
}

// OpenExternal implements ports.NavigationSink.
func (c *Canvas) OpenExternal(locator string) error {
	if c.opener == nil {
		return fmt.Errorf("no opener for %s", locator)
	}
	return c.opener.Open(locator)
}

// CurrentPage implements ports.NavigationSink.
func (c *Canvas) CurrentPage() int { return c.page }

// TocRoot implements ports.Document over the displayed document.
func (c *Canvas) TocRoot() *toc.Node {
	if c.doc == nil {
		return nil
	}
	return c.doc.TocRoot()
}

func (c *Canvas) NamedDest(name string) (*toc.Destination, bool) {
	if c.doc == nil {
		return nil, false
	}
	return c.doc.NamedDest(name)
}

func (c *Canvas) PageByLabel(label string) (int, bool) {
	if c.doc == nil {
		return 0, false
	}
	return c.doc.PageByLabel(label)
}

func (c *Canvas) PageCount() int {
	if c.doc == nil {
		return 0
	}
	return c.doc.PageCount()
}

func (c *Canvas) Dir() string {
	if c.doc == nil {
		return ""
	}
	return c.doc.Dir()
}

// PageLabel returns the label of the current page.
func (c *Canvas) PageLabel() string {
	if c.doc == nil {
		return ""
	}
	p, _ := c.doc.Page(c.page)
	return p.Label
}

// View renders the visible part of the canvas with ov drawn over it.
func (c *Canvas) View(ov Overlay) string {
	if c.doc == nil {
		return strings.Repeat("\n", max(c.height-1, 0))
	}
	lines := make([]string, len(c.rows))
	for i, r := range c.rows {
		if r.line < 0 {
			p, _ := c.doc.Page(r.page)
			lines[i] = render.PageSeparator(c.styles, r.page, p.Label, c.width)
			continue
		}
		lines[i] = render.Line(c.styles, c.lineText(r), c.x, c.width, c.spans(i, r, ov))
	}
	c.vp.SetContent(strings.Join(lines, "\n"))
	c.vp.SetYOffset(c.y)
	return c.vp.View()
}

func (c *Canvas) lineText(r row) string {
	p, _ := c.doc.Page(r.page)
	if r.line < len(p.Lines) {
		return p.Lines[r.line]
	}
	return ""
}

// spans collects the highlights of canvas row i.
func (c *Canvas) spans(i int, r row, ov Overlay) []render.Span {
	var spans []render.Span
	p, _ := c.doc.Page(r.page)
	pageSpans := func(rects []image.Rectangle, kind render.SpanKind) {
		for _, rect := range rects {
			if r.line >= rect.Min.Y && r.line < rect.Max.Y {
				spans = append(spans, render.Span{Start: rect.Min.X, End: rect.Max.X, Kind: kind})
			}
		}
	}
	for _, l := range p.Links {
		pageSpans([]image.Rectangle{l.Rect}, render.SpanLink)
	}
	for _, h := range ov.Hits {
		if h.Page == r.page {
			pageSpans([]image.Rectangle{h.Rect}, render.SpanFindHit)
		}
	}
	if ov.HasSelection {
		sel := ov.Selection.Add(image.Pt(c.x, c.y))
		if i >= sel.Min.Y && i < sel.Max.Y {
			spans = append(spans, render.Span{Start: sel.Min.X, End: sel.Max.X, Kind: render.SpanSelection})
		}
	}
	if ov.MarkerPage == r.page {
		pageSpans(ov.Marker, render.SpanMarker)
	}
	return spans
}
