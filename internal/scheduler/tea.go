package scheduler

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FireMsg is delivered to the bubbletea program when a scheduled callback is due.
type FireMsg struct {
	ID uint64
}

// Tea schedules callbacks as bubbletea tick commands. The model drains the
// queued commands with Commands after each Update and hands every FireMsg
// back to Dispatch, so callbacks run inside the program's Update loop.
type Tea struct {
	seq     uint64
	timers  map[uint64]*timer
	pending []tea.Cmd
}

// NewTea returns an empty Tea scheduler.
func NewTea() *Tea {
	return &Tea{timers: make(map[uint64]*timer)}
}

// After implements Scheduler.
func (s *Tea) After(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	return s.add(d, 0, fn)
}

// Every implements Scheduler.
func (s *Tea) Every(d time.Duration, fn func()) Token {
	d = clampInterval(d)
	return s.add(d, d, fn)
}

func (s *Tea) add(delay, interval time.Duration, fn func()) *timer {
	s.seq++
	t := &timer{id: s.seq, interval: interval, fn: fn}
	s.timers[t.id] = t
	s.pending = append(s.pending, tick(t.id, delay))
	return t
}

func tick(id uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FireMsg{ID: id}
	})
}

// Commands returns the tick commands queued since the last call, or nil.
func (s *Tea) Commands() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Dispatch runs the callback identified by msg. It reports whether a live
// callback fired; ticks for canceled tokens are dropped.
func (s *Tea) Dispatch(msg FireMsg) bool {
	t, ok := s.timers[msg.ID]
	if !ok {
		return false
	}
	if !t.Active() {
		delete(s.timers, msg.ID)
		return false
	}
	if t.interval > 0 {
		s.pending = append(s.pending, tick(t.id, t.interval))
	} else {
		t.done = true
		delete(s.timers, msg.ID)
	}
	t.fn()
	return true
}

// Pending returns the number of callbacks that can still fire.
func (s *Tea) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
