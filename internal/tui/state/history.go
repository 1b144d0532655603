package state

import (
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/ports"
	"github.com/cristianoliveira/docview/internal/settings"
)

// restoreWindow applies the remembered view of doc to the window.
func (m *Model) restoreWindow(doc *document.Document) {
	st, ok := m.history.Lookup(doc.Path())
	if !ok {
		return
	}
	if mode, err := ports.ParseDisplayMode(st.DisplayMode); err == nil {
		m.window.SetDisplayMode(mode)
	}
	if st.Zoom != 0 {
		m.window.SetZoom(st.Zoom)
	}
	m.window.SetTocVisible(st.ShowToc)
}

// restorePage shows the remembered page of the current document.
func (m *Model) restorePage(doc *document.Document) {
	st, ok := m.history.Lookup(doc.Path())
	if !ok || st.Page <= 1 || st.Page > doc.PageCount() {
		return
	}
	_ = m.session.GotoPage(st.Page)
}

// rememberView records the view of the shown document. While presenting, the
// window settings saved on entry are recorded instead of the presentation ones.
func (m *Model) rememberView() {
	doc := m.canvas.DocumentModel()
	if doc == nil || doc.Path() == "" {
		return
	}
	st := settings.DocumentState{
		Path:        doc.Path(),
		Page:        m.canvas.CurrentPage(),
		DisplayMode: m.window.DisplayMode().String(),
		Zoom:        m.window.Zoom(),
		ShowToc:     m.window.TocVisible(),
	}
	if snap, ok := m.session.Presentation().Snapshot(); ok {
		st.DisplayMode = snap.DisplayMode.String()
		st.Zoom = snap.Zoom
		st.ShowToc = snap.TocVisible
	}
	m.history.Remember(st)
}

// saveHistory writes the history when a path is configured.
func (m *Model) saveHistory() {
	if m.historyPath == "" {
		return
	}
	if err := settings.SaveTo(m.historyPath, m.history); err != nil {
		m.log.Warn("failed to save document history", "path", m.historyPath, "error", err)
	}
}
