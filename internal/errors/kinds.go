// Package errors defines the error kinds raised by the session core and the
// handlers that surface them to the user.
package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrAlreadyActive indicates an interaction transition was attempted while not idle.
	ErrAlreadyActive = stderrors.New("interaction already active")
	// ErrNotFound indicates a named destination, TOC entry or file could not be found.
	ErrNotFound = stderrors.New("not found")
	// ErrOpenFailed indicates an external resource could not be opened.
	ErrOpenFailed = stderrors.New("open failed")
	// ErrInvalidState indicates an operation was called in a state that forbids it.
	ErrInvalidState = stderrors.New("invalid state")
)

// Kind classifies an Error.
type Kind int

const (
	KindAlreadyActive Kind = iota + 1
	KindNotFound
	KindOpenFailed
	KindInvalidState
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAlreadyActive:
		return "already-active"
	case KindNotFound:
		return "not-found"
	case KindOpenFailed:
		return "open-failed"
	case KindInvalidState:
		return "invalid-state"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAlreadyActive:
		return ErrAlreadyActive
	case KindNotFound:
		return ErrNotFound
	case KindOpenFailed:
		return ErrOpenFailed
	case KindInvalidState:
		return ErrInvalidState
	default:
		return nil
	}
}

// Error carries the failed operation and its target alongside the kind.
type Error struct {
	Kind   Kind
	Op     string
	Target string
	Err    error
}

// New builds an Error of the given kind.
func New(kind Kind, op, target string, err error) *Error {
	return &Error{Kind: kind, Op: op, Target: target, Err: err}
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Target)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Kind.sentinel())
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the kind sentinel and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of err, or 0 if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	switch {
	case stderrors.Is(err, ErrAlreadyActive):
		return KindAlreadyActive
	case stderrors.Is(err, ErrNotFound):
		return KindNotFound
	case stderrors.Is(err, ErrOpenFailed):
		return KindOpenFailed
	case stderrors.Is(err, ErrInvalidState):
		return KindInvalidState
	}
	return 0
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
