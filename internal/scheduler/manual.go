package scheduler

import "time"

// Manual is a deterministic Scheduler driven by Advance. It is used by tests
// and by non-interactive commands.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*timer
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	return m.add(d, 0, fn)
}

// Every implements Scheduler.
func (m *Manual) Every(d time.Duration, fn func()) Token {
	d = clampInterval(d)
	return m.add(d, d, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) *timer {
	m.seq++
	t := &timer{id: m.seq, due: m.now + delay, interval: interval, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the scheduler's virtual clock.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves the clock forward by d, firing every callback that falls due
// in order of due time, then scheduling order.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			next.done = true
		}
		next.fn()
	}
	m.now = target
	m.prune()
}

func (m *Manual) nextDue(limit time.Duration) *timer {
	var next *timer
	for _, t := range m.timers {
		if !t.Active() || t.due > limit {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}

func (m *Manual) prune() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if t.Active() {
			live = append(live, t)
		}
	}
	clear(m.timers[len(live):])
	m.timers = live
}

// Pending returns the number of callbacks that can still fire.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
