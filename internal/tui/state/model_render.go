package state

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/docview/internal/interaction"
	"github.com/cristianoliveira/docview/internal/presentation"
	"github.com/cristianoliveira/docview/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.session.Presentation().State() {
	case presentation.BlackScreen:
		return render.Blank(m.width, m.height, false)
	case presentation.WhiteScreen:
		return render.Blank(m.width, m.height, true)
	}

	body := m.canvas.View(m.overlay())
	if m.tocShown() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.tocView(), body)
	}
	if !m.chrome() {
		return body
	}

	var s strings.Builder
	s.WriteString(render.TabBar(m.tabStates(), m.width))
	s.WriteString("\n")
	s.WriteString(body)
	s.WriteString("\n")
	s.WriteString(m.statusView())
	return s.String()
}

// overlay collects the highlights the session currently shows.
func (m *Model) overlay() Overlay {
	ov := Overlay{Hits: m.hits}
	if sel, ok := m.session.Selection(); ok {
		ov.Selection, ov.HasSelection = sel, true
	}
	if machine := m.session.Machine(); isSelecting(machine.Mode()) {
		ov.Selection, ov.HasSelection = machine.Selection(), true
	}
	if marker := m.session.Marker(); marker.Showing() {
		ov.MarkerPage = marker.Page()
		ov.Marker = marker.Rects()
	}
	return ov
}

func isSelecting(mode interaction.Mode) bool {
	return mode == interaction.Selecting || mode == interaction.SelectingText
}

func (m *Model) tabStates() []render.TabState {
	active, _ := m.session.ActiveTab()
	tabs := m.session.Tabs()
	states := make([]render.TabState, len(tabs))
	for i, t := range tabs {
		states[i] = render.TabState{Title: t.Title, Active: t.ID == active.ID}
	}
	return states
}

func (m *Model) tocView() string {
	height := m.canvas.height
	rows := make([]string, height)
	for y := range rows {
		idx, ok := m.toc.at(y)
		if !ok {
			rows[y] = strings.Repeat(" ", tocPanelWidth)
			continue
		}
		e := m.toc.entries[idx]
		linked := e.node.Dest != nil
		rows[y] = render.TocEntry(e.node.Name, e.depth, tocPanelWidth-1, idx == m.toc.cursor, linked) + " "
	}
	return strings.Join(rows, "\n")
}

func (m *Model) statusView() string {
	state := render.StatusState{
		Page:      m.canvas.CurrentPage(),
		PageCount: m.canvas.PageCount(),
		Label:     m.canvas.PageLabel(),
		Mode:      m.modeLabel(),
		Width:     m.width,
	}
	if m.promptKind != promptNone {
		state.Prompt = m.prompt.View()
	}
	if m.hasStatusMessage {
		state.Message = m.statusMessage.Text
		state.MessageKind = m.statusMessage.Type.String()
	}
	return render.Status(state)
}

func (m *Model) modeLabel() string {
	var parts []string
	if ps := m.session.Presentation().State(); ps != presentation.Disabled {
		parts = append(parts, "presenting")
	}
	if m.session.Presentation().FullScreen() {
		parts = append(parts, "fullscreen")
	}
	if mode := m.session.Machine().Mode(); m.session.Machine().Active() {
		parts = append(parts, mode.String())
	}
	if m.session.FindInProgress() {
		parts = append(parts, "finding")
	}
	if m.session.PrintInProgress() {
		parts = append(parts, "printing")
	}
	if len(m.hits) > 0 {
		parts = append(parts, fmt.Sprintf("match %d/%d", m.hitIdx+1, len(m.hits)))
	}
	parts = append(parts, m.window.DisplayMode().String())
	return strings.Join(parts, " ")
}
