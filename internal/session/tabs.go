package session

import (
	"slices"

	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/google/uuid"
)

// Tab is one open document in the window.
type Tab struct {
	ID    uuid.UUID
	Title string
	Path  string
}

// OpenTab adds a tab and makes it active.
func (s *Session) OpenTab(title, path string) Tab {
	tab := Tab{ID: uuid.New(), Title: title, Path: path}
	s.tabs = append(s.tabs, tab)
	_ = s.SelectTab(tab.ID)
	return tab
}

// SelectTab makes id the active tab.
func (s *Session) SelectTab(id uuid.UUID) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	if s.tabIndex(id) < 0 {
		return errors.New(errors.KindNotFound, "select tab", id.String(), nil)
	}
	s.history.Push(id)
	if id == s.active {
		return nil
	}
	s.stopScrolling()
	s.CancelForwardSearch()
	s.clearSelection()
	s.active = id
	s.log.Debug("tab selected", "tab", id.String())
	s.deps.Renderer.RequestRepaint(nil)
	return nil
}

// CloseTab removes id. When it was active, the most recently used remaining
// tab becomes active, falling back to the tab that took its place in the
// strip. It returns the new active tab, uuid.Nil when none are left.
func (s *Session) CloseTab(id uuid.UUID) (uuid.UUID, error) {
	if s.closed {
		return uuid.Nil, errors.ErrInvalidState
	}
	idx := s.tabIndex(id)
	if idx < 0 {
		return s.active, errors.New(errors.KindNotFound, "close tab", id.String(), nil)
	}
	s.tabs = slices.Delete(s.tabs, idx, idx+1)
	s.history.Remove(id)
	if id != s.active {
		return s.active, nil
	}

	s.active = uuid.Nil
	next, ok := s.history.Current()
	if !ok && len(s.tabs) > 0 {
		next = s.tabs[min(idx, len(s.tabs)-1)].ID
		ok = true
	}
	if !ok {
		s.stopScrolling()
		s.CancelForwardSearch()
		s.deps.Renderer.RequestRepaint(nil)
		return uuid.Nil, nil
	}
	return next, s.SelectTab(next)
}

func (s *Session) tabIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.tabs, func(t Tab) bool { return t.ID == id })
}

// Tabs returns the open tabs in strip order.
func (s *Session) Tabs() []Tab { return slices.Clone(s.tabs) }

// ActiveTab returns the active tab.
func (s *Session) ActiveTab() (Tab, bool) {
	if i := s.tabIndex(s.active); i >= 0 {
		return s.tabs[i], true
	}
	return Tab{}, false
}

// TabHistory returns tab IDs, most recently used first.
func (s *Session) TabHistory() []uuid.UUID { return s.history.Items() }
