// Package interaction owns the single current mouse/gesture mode of a window.
//
// Exactly one Mode is current at any time. Begin moves from Idle into an
// active mode and records the origin in the same step; Update reports the
// incremental movement since the previous position; End returns to Idle.
// A Machine is not safe for concurrent use: it belongs to the window's
// owning goroutine.
package interaction

import (
	"image"

	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/logging"
)

// Mode is the current interaction mode.
type Mode int

const (
	Idle Mode = iota
	Dragging
	DraggingRight
	Selecting
	Scrolling
	SelectingText
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case DraggingRight:
		return "dragging-right"
	case Selecting:
		return "selecting"
	case Scrolling:
		return "scrolling"
	case SelectingText:
		return "selecting-text"
	default:
		return "unknown"
	}
}

// DefaultSlowdown divides the pointer distance from the scroll origin into a scroll speed.
const DefaultSlowdown = 10

// Repainter is the part of the rendering collaborator the machine needs.
type Repainter interface {
	RequestRepaint(region *image.Rectangle)
}

// Machine is the interaction state machine.
type Machine struct {
	mode     Mode
	start    image.Point
	prev     image.Point
	speed    image.Point
	slowdown int
	repaint  Repainter
	log      logging.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithSlowdown sets the smooth-scroll slowdown factor. Non-positive values are ignored.
func WithSlowdown(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.slowdown = n
		}
	}
}

// WithLogger sets the logger for mode transitions.
func WithLogger(l logging.Logger) Option {
	return func(m *Machine) {
		m.log = logging.OrNop(l)
	}
}

// New creates an idle Machine. repaint may be nil.
func New(repaint Repainter, opts ...Option) *Machine {
	m := &Machine{
		slowdown: DefaultSlowdown,
		repaint:  repaint,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin enters mode with the pointer at origin.
// It fails with ErrAlreadyActive, leaving the state unchanged, unless the
// machine is Idle; beginning Idle itself is ErrInvalidState.
func (m *Machine) Begin(mode Mode, origin image.Point) error {
	if mode == Idle || mode < Idle || mode > SelectingText {
		return errors.ErrInvalidState
	}
	if m.mode != Idle {
		m.log.Debug("begin ignored", "mode", mode.String(), "current", m.mode.String())
		return errors.ErrAlreadyActive
	}
	m.mode = mode
	m.start = origin
	m.prev = origin
	m.speed = image.Point{}
	m.log.Debug("interaction begin", "mode", mode.String(), "x", origin.X, "y", origin.Y)
	return nil
}

// Update moves the pointer to pos and returns the delta from the previous
// position. It is ErrInvalidState while Idle.
func (m *Machine) Update(pos image.Point) (image.Point, error) {
	if m.mode == Idle {
		return image.Point{}, errors.ErrInvalidState
	}
	delta := pos.Sub(m.prev)
	oldSelection := m.Selection()
	m.prev = pos

	switch m.mode {
	case Scrolling:
		m.speed = pos.Sub(m.start).Div(m.slowdown)
	case Dragging, DraggingRight:
		if delta != (image.Point{}) {
			m.requestRepaint(nil)
		}
	case Selecting, SelectingText:
		if delta != (image.Point{}) {
			region := oldSelection.Union(m.Selection())
			m.requestRepaint(&region)
		}
	}
	return delta, nil
}

// End returns to Idle. It is idempotent.
func (m *Machine) End() {
	if m.mode != Idle {
		m.log.Debug("interaction end", "mode", m.mode.String(), "distance", m.Distance())
	}
	m.mode = Idle
	m.speed = image.Point{}
}

func (m *Machine) requestRepaint(region *image.Rectangle) {
	if m.repaint != nil {
		m.repaint.RequestRepaint(region)
	}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Active reports whether the machine is in a non-Idle mode.
func (m *Machine) Active() bool { return m.mode != Idle }

// Origin returns where the current (or last) interaction began.
func (m *Machine) Origin() image.Point { return m.start }

// Position returns the last position passed to Begin or Update.
func (m *Machine) Position() image.Point { return m.prev }

// ScrollSpeed is the per-tick smooth scroll speed while Scrolling.
func (m *Machine) ScrollSpeed() image.Point { return m.speed }

// Selection returns the rectangle spanned by the origin and the current position.
func (m *Machine) Selection() image.Rectangle {
	r := image.Rectangle{Min: m.start, Max: m.prev}.Canon()
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// Distance is the Chebyshev distance between the origin and the current position.
func (m *Machine) Distance() int {
	d := m.prev.Sub(m.start)
	return max(abs(d.X), abs(d.Y))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
