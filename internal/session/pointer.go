package session

import (
	"image"

	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/interaction"
	"github.com/cristianoliveira/docview/internal/presentation"
	"github.com/cristianoliveira/docview/internal/scheduler"
	"github.com/cristianoliveira/docview/internal/toc"
)

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// PointerDown starts an interaction for button at pos. With ctrl held the
// left button selects a rectangle; over text it selects text. The middle
// button toggles smooth scrolling.
func (s *Session) PointerDown(button Button, pos image.Point, ctrl bool) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	if button == ButtonMiddle {
		if s.machine.Mode() == interaction.Scrolling {
			s.stopScrolling()
			return nil
		}
		if err := s.machine.Begin(interaction.Scrolling, pos); err != nil {
			return err
		}
		scheduler.Cancel(s.smoothTok)
		s.smoothTok = s.deps.Scheduler.Every(s.opts.SmoothScrollInterval, s.smoothScrollTick)
		return nil
	}

	mode := interaction.DraggingRight
	if button == ButtonLeft {
		mode = s.leftMode(pos, ctrl)
	}
	if err := s.machine.Begin(mode, pos); err != nil {
		return err
	}
	if mode == interaction.Selecting || mode == interaction.SelectingText {
		s.clearSelection()
	}
	return nil
}

func (s *Session) leftMode(pos image.Point, ctrl bool) interaction.Mode {
	switch {
	case s.presentation.State() != presentation.Disabled:
		return interaction.Dragging
	case ctrl:
		return interaction.Selecting
	case s.deps.Layout.OverText(pos):
		return interaction.SelectingText
	default:
		return interaction.Dragging
	}
}

// PointerMove feeds a pointer position into the current interaction.
// Without one it does nothing.
func (s *Session) PointerMove(pos image.Point) {
	if s.closed || !s.machine.Active() {
		return
	}
	mode := s.machine.Mode()
	delta, err := s.machine.Update(pos)
	if err != nil {
		return
	}
	if (mode == interaction.Dragging || mode == interaction.DraggingRight) && delta != (image.Point{}) {
		s.deps.Layout.ScrollBy(-delta.X, -delta.Y)
	}
}

// PointerUp finishes the interaction started by button. A release that
// stayed within the click threshold is treated as a click: it follows the
// link under the pointer, or in presentation mode turns the page.
func (s *Session) PointerUp(button Button, pos image.Point) error {
	if s.closed || button == ButtonMiddle {
		return nil
	}
	mode := s.machine.Mode()
	if !buttonOwns(button, mode) {
		return nil
	}
	s.PointerMove(pos)
	click := s.machine.Distance() <= s.opts.ClickThreshold
	selection := s.machine.Selection()
	s.machine.End()

	switch {
	case (mode == interaction.Selecting || mode == interaction.SelectingText) && !click:
		s.selection = selection
		s.hasSelection = true
		s.log.Debug("selection", "mode", mode.String(), "rect", selection.String())
		return nil
	case !click:
		return nil
	}
	return s.click(button, pos)
}

func buttonOwns(button Button, mode interaction.Mode) bool {
	switch mode {
	case interaction.Dragging, interaction.Selecting, interaction.SelectingText:
		return button == ButtonLeft
	case interaction.DraggingRight:
		return button == ButtonRight
	}
	return false
}

func (s *Session) click(button Button, pos image.Point) error {
	switch s.presentation.State() {
	case presentation.BlackScreen, presentation.WhiteScreen:
		return s.presentation.Enter(presentation.Enabled)
	case presentation.Enabled:
		if button == ButtonLeft {
			return s.GotoLink(&toc.Destination{Kind: toc.DestNextPage})
		}
		return s.GotoLink(&toc.Destination{Kind: toc.DestPrevPage})
	}
	if button != ButtonLeft {
		return nil
	}
	s.clearSelection()
	dest, ok := s.deps.Layout.LinkAt(pos)
	if !ok || dest == nil {
		return nil
	}
	return s.GotoLink(dest)
}

func (s *Session) clearSelection() {
	if !s.hasSelection {
		return
	}
	region := s.selection
	s.selection = image.Rectangle{}
	s.hasSelection = false
	s.deps.Renderer.RequestRepaint(&region)
}

// Selection returns the last completed selection rectangle.
func (s *Session) Selection() (image.Rectangle, bool) {
	return s.selection, s.hasSelection
}

func (s *Session) smoothScrollTick() {
	if s.machine.Mode() != interaction.Scrolling {
		scheduler.Cancel(s.smoothTok)
		s.smoothTok = nil
		return
	}
	if speed := s.machine.ScrollSpeed(); speed != (image.Point{}) {
		s.deps.Layout.ScrollBy(speed.X, speed.Y)
	}
}

func (s *Session) stopScrolling() {
	s.machine.End()
	scheduler.Cancel(s.smoothTok)
	s.smoothTok = nil
}

// SmoothScrolling reports whether the smooth scroll tick is scheduled.
func (s *Session) SmoothScrolling() bool {
	return scheduler.Active(s.smoothTok)
}

// Wheel accumulates wheel rotation and scrolls one line per WheelDelta.
// Positive deltas scroll up (or left when horizontal). It returns the
// number of lines scrolled.
func (s *Session) Wheel(delta int, horizontal bool) int {
	if s.closed {
		return 0
	}
	acc := &s.wheel.Y
	if horizontal {
		acc = &s.wheel.X
	}
	*acc += delta
	lines := *acc / WheelDelta
	*acc -= lines * WheelDelta
	if lines == 0 {
		return 0
	}
	if horizontal {
		s.deps.Layout.ScrollBy(-lines, 0)
	} else {
		s.deps.Layout.ScrollBy(0, -lines)
	}
	return lines
}

// PanStart begins a touch pan at pos; scrollX is the current horizontal scroll position.
func (s *Session) PanStart(pos image.Point, scrollX int) {
	if s.closed {
		return
	}
	s.gestures.PanStart(pos, scrollX)
}

// PanUpdate scrolls horizontally by the pan movement.
func (s *Session) PanUpdate(pos image.Point) {
	if s.closed {
		return
	}
	if cmd, ok := s.gestures.PanUpdate(pos); ok && cmd.DX != 0 {
		s.deps.Layout.ScrollBy(cmd.DX, 0)
	}
}

// PanEnd finishes the touch pan.
func (s *Session) PanEnd() {
	s.gestures.PanEnd()
}

// ZoomStart begins a pinch with the given finger distance.
func (s *Session) ZoomStart(arg float64) {
	s.gestures.ZoomStart(arg)
}

// ZoomUpdate scales the window zoom by the pinch movement since the last sample.
func (s *Session) ZoomUpdate(arg float64) {
	if s.closed {
		return
	}
	factor := s.gestures.ZoomUpdate(arg)
	if factor == 1 {
		return
	}
	zoom := s.deps.Window.Zoom()
	if zoom <= 0 {
		zoom = 100
	}
	s.deps.Window.SetZoom(zoom * factor)
	s.deps.Renderer.RequestRepaint(nil)
}
