package session

import (
	"fmt"
	"image"
	"time"

	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/links"
	"github.com/cristianoliveira/docview/internal/presentation"
	"github.com/cristianoliveira/docview/internal/scheduler"
	"github.com/cristianoliveira/docview/internal/toc"
)

// NavigateTo sends target to the navigation sink. Any forward-search marker is dropped.
func (s *Session) NavigateTo(target toc.Target) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	s.CancelForwardSearch()
	if err := s.deps.Sink.Navigate(target); err != nil {
		return s.report(fmt.Errorf("navigate to %s: %w", target, err))
	}
	return nil
}

// GotoPage navigates to the top of a 1-based page.
func (s *Session) GotoPage(page int) error {
	return s.GotoLink(&toc.Destination{Kind: toc.DestScrollTo, Page: page})
}

// GotoNamedDest resolves name and navigates to it.
func (s *Session) GotoNamedDest(name string) (links.Match, error) {
	if s.closed {
		return links.MatchNone, errors.ErrInvalidState
	}
	s.CancelForwardSearch()
	match, err := s.resolver.GotoNamedDest(name)
	if err != nil {
		return match, s.report(err)
	}
	s.log.Info("named destination", "name", name, "match", match.String())
	return match, nil
}

// GotoLink follows a link or TOC destination.
func (s *Session) GotoLink(dest *toc.Destination) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	s.CancelForwardSearch()
	return s.report(s.resolver.GotoLink(dest))
}

// ShowForwardSearch scrolls to the first of rects on page and marks them.
// The marker holds for FwdSearchTimeout, then fades one step every
// FwdSearchInterval until it disappears.
func (s *Session) ShowForwardSearch(page int, rects []image.Rectangle) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	if len(rects) == 0 {
		return s.report(errors.New(errors.KindNotFound, "forward search", fmt.Sprintf("page %d", page), nil))
	}
	s.CancelForwardSearch()
	target := toc.Target{Page: page, Point: rects[0].Min}
	if err := s.deps.Sink.Navigate(target); err != nil {
		return s.report(fmt.Errorf("forward search to %s: %w", target, err))
	}
	s.marker.Show(page, rects, s.opts.FwdSearchSteps)
	s.fwdTok = s.deps.Scheduler.After(s.opts.FwdSearchTimeout, func() {
		s.fwdTok = s.deps.Scheduler.Every(s.opts.FwdSearchInterval, s.forwardSearchTick)
	})
	return nil
}

func (s *Session) forwardSearchTick() {
	s.marker.Tick(s.opts.FwdSearchDecrement)
	if !s.marker.Showing() {
		scheduler.Cancel(s.fwdTok)
		s.fwdTok = nil
	}
}

// CancelForwardSearch hides the marker and stops its decay.
func (s *Session) CancelForwardSearch() {
	scheduler.Cancel(s.fwdTok)
	s.fwdTok = nil
	s.marker.Cancel()
}

// ForwardSearchPending reports whether a marker decay callback is scheduled.
func (s *Session) ForwardSearchPending() bool {
	return scheduler.Active(s.fwdTok)
}

// RepaintAsync schedules a full repaint after delay, replacing any pending
// one. A zero delay uses the configured repaint delay.
func (s *Session) RepaintAsync(delay time.Duration) {
	if s.closed {
		return
	}
	if delay <= 0 {
		delay = s.opts.RepaintDelay
	}
	scheduler.Cancel(s.repaintTok)
	s.repaintTok = s.deps.Scheduler.After(delay, func() {
		s.repaintTok = nil
		s.deps.Renderer.RequestRepaint(nil)
	})
}

// EnterPresentation switches to presentation mode or one of its blank variants.
func (s *Session) EnterPresentation(mode presentation.State) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	s.stopScrolling()
	return s.presentation.Enter(mode)
}

// ExitPresentation returns from presentation or full screen to the normal view.
func (s *Session) ExitPresentation() error {
	if s.closed {
		return errors.ErrInvalidState
	}
	return s.presentation.Exit()
}

// ToggleFullScreen enters or leaves full screen.
func (s *Session) ToggleFullScreen() error {
	if s.closed {
		return errors.ErrInvalidState
	}
	if s.presentation.FullScreen() {
		return s.presentation.ExitFullScreen()
	}
	s.stopScrolling()
	return s.presentation.EnterFullScreen()
}
