// Package background runs print and find jobs off the owning goroutine.
//
// A job only shares a cancel flag with its owner. When it finishes, a
// CompletionMsg is posted back so the owner can update its state on its own
// goroutine.
package background

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind identifies the background job type.
type Kind int

const (
	Print Kind = iota + 1
	Find
)

func (k Kind) String() string {
	switch k {
	case Print:
		return "print"
	case Find:
		return "find"
	default:
		return "unknown"
	}
}

// CompletionMsg reports a finished job to the owner.
type CompletionMsg struct {
	Kind     Kind
	ID       uint64
	Result   any
	Err      error
	Canceled bool
}

// Poster delivers messages onto the owning goroutine. *tea.Program implements it.
type Poster interface {
	Send(msg tea.Msg)
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(msg tea.Msg)

func (f PosterFunc) Send(msg tea.Msg) { f(msg) }

// Work is the body of a job. It should poll t.Canceled or ctx.Done and
// return early once either fires.
type Work func(ctx context.Context, t *Task) (any, error)

// Task is the owner's handle on a running job.
type Task struct {
	kind     Kind
	id       uint64
	canceled atomic.Bool
	cancel   context.CancelFunc
	done     chan struct{}
}

var lastID atomic.Uint64

// Start runs work in a new goroutine and posts its CompletionMsg to poster.
func Start(ctx context.Context, kind Kind, poster Poster, work Work) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		kind:   kind,
		id:     lastID.Add(1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		defer cancel()
		result, err := work(ctx, t)
		msg := CompletionMsg{Kind: kind, ID: t.id, Result: result, Err: err, Canceled: t.Canceled()}
		if poster != nil {
			poster.Send(msg)
		}
	}()
	return t
}

// RequestCancel asks the job to stop. It does not wait.
func (t *Task) RequestCancel() {
	if t == nil {
		return
	}
	t.canceled.Store(true)
	t.cancel()
}

// Canceled reports whether cancellation was requested.
func (t *Task) Canceled() bool {
	return t != nil && t.canceled.Load()
}

// Done is closed after the job returned and its completion was posted.
func (t *Task) Done() <-chan struct{} { return t.done }

// ID is unique among the tasks of the process.
func (t *Task) ID() uint64 { return t.id }

// Kind tells a print task from a find task.
func (t *Task) Kind() Kind { return t.kind }
