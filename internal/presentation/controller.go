// Package presentation switches a window between its normal view, full
// screen and presentation mode, restoring the prior view on the way back.
package presentation

import (
	"image"

	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/interaction"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/ports"
)

// State is the presentation mode.
type State int

const (
	Disabled State = iota
	Enabled
	BlackScreen
	WhiteScreen
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case Enabled:
		return "enabled"
	case BlackScreen:
		return "black"
	case WhiteScreen:
		return "white"
	default:
		return "unknown"
	}
}

// Snapshot is the window configuration saved when leaving the normal view.
type Snapshot struct {
	Style       ports.WindowStyle
	Frame       image.Rectangle
	Placement   ports.Placement
	Zoom        float64
	DisplayMode ports.DisplayMode
	TocVisible  bool
}

func capture(w ports.WindowHost) Snapshot {
	return Snapshot{
		Style:       w.Style(),
		Frame:       w.FrameRect(),
		Placement:   w.Placement(),
		Zoom:        w.Zoom(),
		DisplayMode: w.DisplayMode(),
		TocVisible:  w.TocVisible(),
	}
}

func (s Snapshot) restore(w ports.WindowHost) {
	w.SetStyle(s.Style)
	w.SetPlacement(s.Placement)
	w.SetFrameRect(s.Frame)
	w.SetDisplayMode(s.DisplayMode)
	w.SetZoom(s.Zoom)
	w.SetTocVisible(s.TocVisible)
}

// Repainter receives full repaint requests.
type Repainter interface {
	RequestRepaint(region *image.Rectangle)
}

// Controller owns the presentation state of one window.
//
// A snapshot is taken once when the window leaves its normal view (entering
// presentation or full screen) and restored once when it returns. Switching
// between presentation variants, or converting full screen into
// presentation, keeps the original snapshot.
type Controller struct {
	window   ports.WindowHost
	machine  *interaction.Machine
	renderer Repainter
	log      logging.Logger

	state      State
	fullScreen bool
	snapshot   *Snapshot
}

// New returns a Controller in the Disabled state.
func New(window ports.WindowHost, machine *interaction.Machine, renderer Repainter, log logging.Logger) *Controller {
	return &Controller{
		window:   window,
		machine:  machine,
		renderer: renderer,
		log:      logging.OrNop(log),
	}
}

// Enter switches to a presentation variant.
func (c *Controller) Enter(mode State) error {
	if mode <= Disabled || mode > WhiteScreen {
		return errors.ErrInvalidState
	}
	if c.state == Disabled {
		c.forceIdle()
		if c.fullScreen {
			c.fullScreen = false
		} else {
			c.leaveNormalView()
		}
		c.applyPresentationView()
	}
	c.log.Debug("presentation enter", "from", c.state.String(), "to", mode.String())
	c.state = mode
	c.repaint()
	return nil
}

// Exit returns to the normal view from presentation or full screen.
// It is ErrInvalidState, without effect, when neither is active.
func (c *Controller) Exit() error {
	if c.state == Disabled {
		if c.fullScreen {
			return c.ExitFullScreen()
		}
		return errors.ErrInvalidState
	}
	c.log.Debug("presentation exit", "from", c.state.String())
	c.state = Disabled
	c.returnToNormalView()
	c.repaint()
	return nil
}

// EnterFullScreen shows the window borderless over the whole monitor.
// It is ErrInvalidState in presentation mode and ErrAlreadyActive when
// already full screen.
func (c *Controller) EnterFullScreen() error {
	if c.state != Disabled {
		return errors.ErrInvalidState
	}
	if c.fullScreen {
		return errors.ErrAlreadyActive
	}
	c.forceIdle()
	c.leaveNormalView()
	c.fullScreen = true
	c.log.Debug("full screen enter")
	c.repaint()
	return nil
}

// ExitFullScreen restores the window saved by EnterFullScreen.
func (c *Controller) ExitFullScreen() error {
	if !c.fullScreen {
		return errors.ErrInvalidState
	}
	c.fullScreen = false
	c.returnToNormalView()
	c.log.Debug("full screen exit")
	c.repaint()
	return nil
}

// ToggleBlackScreen switches between the document and a black screen.
func (c *Controller) ToggleBlackScreen() error {
	return c.toggle(BlackScreen)
}

// ToggleWhiteScreen switches between the document and a white screen.
func (c *Controller) ToggleWhiteScreen() error {
	return c.toggle(WhiteScreen)
}

func (c *Controller) toggle(blank State) error {
	if c.state == Disabled {
		return errors.ErrInvalidState
	}
	if c.state == blank {
		return c.Enter(Enabled)
	}
	return c.Enter(blank)
}

func (c *Controller) leaveNormalView() {
	snap := capture(c.window)
	c.snapshot = &snap
	c.window.SetStyle(ports.StyleBorderless)
	c.window.SetPlacement(ports.PlacementNormal)
	c.window.SetFrameRect(c.window.MonitorRect())
}

func (c *Controller) forceIdle() {
	if c.machine != nil {
		c.machine.End()
	}
}

func (c *Controller) applyPresentationView() {
	c.window.SetTocVisible(false)
	c.window.SetDisplayMode(ports.DisplaySinglePage)
	c.window.SetZoom(ports.ZoomFitPage)
}

func (c *Controller) returnToNormalView() {
	if c.snapshot == nil {
		return
	}
	c.snapshot.restore(c.window)
	c.snapshot = nil
}

func (c *Controller) repaint() {
	if c.renderer != nil {
		c.renderer.RequestRepaint(nil)
	}
}

// State returns the presentation mode.
func (c *Controller) State() State { return c.state }

// FullScreen reports whether a plain full-screen excursion is active.
func (c *Controller) FullScreen() bool { return c.fullScreen }

// Active reports whether the window is away from its normal view.
func (c *Controller) Active() bool { return c.state != Disabled || c.fullScreen }

// Snapshot returns the saved configuration while away from the normal view.
func (c *Controller) Snapshot() (Snapshot, bool) {
	if c.snapshot == nil {
		return Snapshot{}, false
	}
	return *c.snapshot, true
}
