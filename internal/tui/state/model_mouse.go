package state

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/docview/internal/session"
)

// Wheel notches scroll this many lines.
const wheelLines = 3

// handleMouseMsg maps terminal mouse events onto the session. Alt+left
// drags are fed to the touch pan tracker. Once a gesture starts on the
// canvas, its motion and release stay with the canvas even over the TOC panel.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) {
	origin := m.canvasOrigin()
	pt := image.Pt(msg.X-origin.X, msg.Y-origin.Y)

	if m.tocShown() && msg.X < tocPanelWidth {
		if msg.Action == tea.MouseActionPress || !m.capturing() {
			m.handleTocMouse(msg, pt.Y)
			return
		}
		pt.X = 0
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.handleMousePress(msg, pt)
	case tea.MouseActionMotion:
		switch {
		case m.panning:
			m.session.PanUpdate(pt)
		case m.pressing || m.session.SmoothScrolling():
			m.session.PointerMove(pt)
		}
	case tea.MouseActionRelease:
		switch {
		case m.panning:
			m.session.PanEnd()
			m.panning = false
		case m.pressing:
			m.pressing = false
			_ = m.session.PointerUp(m.pressed, pt)
		}
	}
}

// capturing reports whether a canvas gesture is in progress.
func (m *Model) capturing() bool {
	return m.pressing || m.panning || m.session.SmoothScrolling()
}

func (m *Model) handleMousePress(msg tea.MouseMsg, pt image.Point) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.session.Wheel(wheelLines*session.WheelDelta, false)
		return
	case tea.MouseButtonWheelDown:
		m.session.Wheel(-wheelLines*session.WheelDelta, false)
		return
	case tea.MouseButtonWheelLeft:
		m.session.Wheel(wheelLines*session.WheelDelta, true)
		return
	case tea.MouseButtonWheelRight:
		m.session.Wheel(-wheelLines*session.WheelDelta, true)
		return
	}

	button, ok := sessionButton(msg.Button)
	if !ok {
		return
	}
	if button == session.ButtonLeft && msg.Alt {
		m.session.PanStart(pt, m.canvas.Offset().X)
		m.panning = true
		return
	}
	if err := m.session.PointerDown(button, pt, msg.Ctrl); err != nil {
		return
	}
	if button != session.ButtonMiddle {
		m.pressing = true
		m.pressed = button
	}
}

func sessionButton(b tea.MouseButton) (session.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return session.ButtonLeft, true
	case tea.MouseButtonRight:
		return session.ButtonRight, true
	case tea.MouseButtonMiddle:
		return session.ButtonMiddle, true
	}
	return 0, false
}

// handleTocMouse selects and follows the TOC entry on panel row y.
func (m *Model) handleTocMouse(msg tea.MouseMsg, y int) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.toc.move(-1, m.canvas.height)
	case msg.Button == tea.MouseButtonWheelDown:
		m.toc.move(1, m.canvas.height)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		idx, ok := m.toc.at(y)
		if !ok {
			return
		}
		m.toc.cursor = idx
		m.followTocEntry()
	}
}
