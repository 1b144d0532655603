// Package fwdsearch holds the decaying highlight shown after a forward search.
//
// The marker only counts down; the owner schedules Tick calls and stops
// scheduling them once Showing reports false.
package fwdsearch

import (
	"image"
	"slices"

	"github.com/cristianoliveira/docview/internal/logging"
)

// Defaults for the marker decay.
const (
	DefaultSteps     = 5
	DefaultDecrement = 1
)

// Surface is what the marker needs from the rendering side.
type Surface interface {
	RequestRepaint(region *image.Rectangle)
	PageVisible(pageNo int) bool
}

// Marker is the forward-search highlight.
type Marker struct {
	surface  Surface
	log      logging.Logger
	show     bool
	page     int
	rects    []image.Rectangle
	hideStep int
}

// New returns a hidden marker painting through surface.
func New(surface Surface, log logging.Logger) *Marker {
	return &Marker{surface: surface, log: logging.OrNop(log)}
}

// Show marks rects on page and starts the countdown at initialStep.
func (m *Marker) Show(page int, rects []image.Rectangle, initialStep int) {
	if initialStep <= 0 {
		initialStep = DefaultSteps
	}
	m.show = true
	m.page = page
	m.rects = slices.Clone(rects)
	m.hideStep = initialStep
	m.log.Debug("forward search mark", "page", page, "rects", len(rects), "steps", initialStep)
	m.repaint(m.bounds())
}

// Tick decays the marker by decrement steps. It is a no-op while hidden.
// Reaching zero hides the marker and drops its rects.
func (m *Marker) Tick(decrement int) {
	if !m.show {
		return
	}
	if decrement <= 0 {
		decrement = DefaultDecrement
	}
	region := m.bounds()
	m.hideStep = max(0, m.hideStep-decrement)
	if m.hideStep == 0 {
		m.show = false
		m.rects = nil
	}
	if m.surface != nil && m.surface.PageVisible(m.page) {
		m.repaint(region)
	}
}

// Cancel hides the marker immediately.
func (m *Marker) Cancel() {
	if !m.show {
		return
	}
	region := m.bounds()
	m.show = false
	m.rects = nil
	m.hideStep = 0
	m.repaint(region)
}

func (m *Marker) repaint(region *image.Rectangle) {
	if m.surface != nil {
		m.surface.RequestRepaint(region)
	}
}

// bounds is the union of the marked rects, or nil for none.
func (m *Marker) bounds() *image.Rectangle {
	if len(m.rects) == 0 {
		return nil
	}
	r := m.rects[0]
	for _, rect := range m.rects[1:] {
		r = r.Union(rect)
	}
	return &r
}

// Showing reports whether the marker is drawn.
func (m *Marker) Showing() bool { return m.show }

// HideStep is the number of decay steps left, zero once hidden.
func (m *Marker) HideStep() int { return m.hideStep }

// Page is the marked page.
func (m *Marker) Page() int { return m.page }

// Rects returns a copy of the marked rectangles.
func (m *Marker) Rects() []image.Rectangle { return slices.Clone(m.rects) }
