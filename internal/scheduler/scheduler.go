// Package scheduler runs deferred and recurring callbacks on the session's
// owning goroutine. Every scheduled callback is identified by a Token that
// can be canceled; a canceled token never fires again.
package scheduler

import "time"

// MinInterval is the smallest period a recurring callback may use.
const MinInterval = time.Millisecond

// Token identifies a scheduled callback.
type Token interface {
	// Cancel stops the callback from firing. It is idempotent.
	Cancel()
	// Active reports whether the callback can still fire.
	Active() bool
}

// Scheduler schedules callbacks. Callbacks run on the owner, never concurrently
// with other owner code.
type Scheduler interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) Token
	// Every runs fn every d until the token is canceled.
	Every(d time.Duration, fn func()) Token
}

// Cancel cancels t when it is non-nil.
func Cancel(t Token) {
	if t != nil {
		t.Cancel()
	}
}

// Active reports whether t is non-nil and can still fire.
func Active(t Token) bool {
	return t != nil && t.Active()
}

type timer struct {
	id       uint64
	due      time.Duration
	interval time.Duration
	fn       func()
	canceled bool
	done     bool
}

func (t *timer) Cancel()      { t.canceled = true }
func (t *timer) Active() bool { return !t.canceled && !t.done }

func clampInterval(d time.Duration) time.Duration {
	if d < MinInterval {
		return MinInterval
	}
	return d
}
