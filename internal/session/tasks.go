package session

import (
	"github.com/cristianoliveira/docview/internal/background"
	"github.com/cristianoliveira/docview/internal/errors"
)

// StartPrint runs a print job. Only one may run at a time.
func (s *Session) StartPrint(work background.Work) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	if s.printTask != nil {
		return errors.ErrAlreadyActive
	}
	s.printTask = background.Start(s.ctx, background.Print, s.deps.Poster, work)
	s.log.Debug("print started", "task", s.printTask.ID())
	return nil
}

// StartFind runs a find job, canceling any find already running.
func (s *Session) StartFind(work background.Work) error {
	if s.closed {
		return errors.ErrInvalidState
	}
	s.CancelFind()
	s.findTask = background.Start(s.ctx, background.Find, s.deps.Poster, work)
	s.log.Debug("find started", "task", s.findTask.ID())
	return nil
}

// CancelPrint asks the running print job to stop.
func (s *Session) CancelPrint() { s.printTask.RequestCancel() }

// CancelFind asks the running find job to stop.
func (s *Session) CancelFind() { s.findTask.RequestCancel() }

func (s *Session) PrintInProgress() bool { return s.printTask != nil }
func (s *Session) FindInProgress() bool  { return s.findTask != nil }

// TaskCompleted records that a background job finished. Messages for jobs
// that have been replaced are ignored. It reports whether msg was current.
func (s *Session) TaskCompleted(msg background.CompletionMsg) bool {
	var slot **background.Task
	switch msg.Kind {
	case background.Print:
		slot = &s.printTask
	case background.Find:
		slot = &s.findTask
	default:
		return false
	}
	if *slot == nil || (*slot).ID() != msg.ID {
		return false
	}
	*slot = nil

	switch {
	case msg.Canceled:
		s.log.Info("task canceled", "kind", msg.Kind.String(), "task", msg.ID)
	case msg.Err != nil:
		s.log.Error("task failed", "kind", msg.Kind.String(), "task", msg.ID, "error", msg.Err)
		if s.deps.Errors != nil && !s.closed {
			s.deps.Errors.Error(msg.Kind.String() + " failed: " + msg.Err.Error())
		}
	default:
		s.log.Debug("task done", "kind", msg.Kind.String(), "task", msg.ID)
	}
	return true
}
