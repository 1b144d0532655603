// Package gesture turns touch pan and pinch samples into scroll and zoom
// commands, feeding pans into the interaction state machine.
package gesture

import (
	"image"

	"github.com/cristianoliveira/docview/internal/interaction"
	"github.com/cristianoliveira/docview/internal/logging"
)

// DefaultThreshold is the horizontal travel a pan needs before it starts scrolling.
const DefaultThreshold = 2

// ScrollCommand is the horizontal scroll a pan sample asks for.
type ScrollCommand struct {
	// X is the absolute horizontal scroll position.
	X int
	// DX is the change since the previous command.
	DX int
}

// Tracker tracks one pan and one zoom gesture at a time.
type Tracker struct {
	machine   *interaction.Machine
	threshold int
	log       logging.Logger

	panning     bool
	scrolling   bool
	origin      image.Point
	scrollOrigX int

	startArg float64
}

// New returns a Tracker feeding machine. A non-positive threshold uses DefaultThreshold.
func New(machine *interaction.Machine, threshold int, log logging.Logger) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{machine: machine, threshold: threshold, log: logging.OrNop(log)}
}

// PanStart records the pan origin and the horizontal scroll position at that time.
// It does not touch the interaction mode.
func (t *Tracker) PanStart(pos image.Point, scrollX int) {
	t.panning = true
	t.scrolling = false
	t.origin = pos
	t.scrollOrigX = scrollX
}

// PanUpdate maps a pan sample to a scroll command. Until the horizontal
// distance from the origin reaches the threshold nothing happens; the first
// sample past it enters Scrolling. ok is false when no scroll should be applied.
func (t *Tracker) PanUpdate(pos image.Point) (cmd ScrollCommand, ok bool) {
	if !t.panning {
		return ScrollCommand{}, false
	}
	dx := pos.X - t.origin.X
	if !t.scrolling {
		if abs(dx) < t.threshold {
			return ScrollCommand{}, false
		}
		if err := t.machine.Begin(interaction.Scrolling, t.origin); err != nil {
			t.log.Debug("pan ignored", "error", err, "mode", t.machine.Mode().String())
			return ScrollCommand{}, false
		}
		t.scrolling = true
	}
	delta, err := t.machine.Update(pos)
	if err != nil {
		t.scrolling = false
		return ScrollCommand{}, false
	}
	return ScrollCommand{X: t.scrollOrigX - dx, DX: -delta.X}, true
}

// PanEnd ends the pan, returning the machine to Idle if the pan was scrolling.
// A pan that never took over the machine leaves a mouse interaction running.
func (t *Tracker) PanEnd() {
	if t.scrolling {
		t.machine.End()
	}
	t.panning = false
	t.scrolling = false
}

// Panning reports whether a pan is in progress.
func (t *Tracker) Panning() bool { return t.panning }

// ZoomStart records the initial pinch distance.
func (t *Tracker) ZoomStart(arg float64) {
	t.startArg = arg
}

// ZoomUpdate returns the zoom factor relative to the previous sample.
func (t *Tracker) ZoomUpdate(arg float64) float64 {
	if t.startArg <= 0 || arg <= 0 {
		t.startArg = arg
		return 1
	}
	factor := arg / t.startArg
	t.startArg = arg
	return factor
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
