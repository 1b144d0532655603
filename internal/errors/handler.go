package errors

import (
	"sync"

	"github.com/cristianoliveira/docview/internal/colors"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// Report surfaces err through h according to its kind.
// Contract violations (AlreadyActive, InvalidState) are silent; navigation
// failures become warnings or errors. Returns true if anything was reported.
func Report(h ErrorHandler, err error) bool {
	if h == nil || err == nil {
		return false
	}
	switch KindOf(err) {
	case KindAlreadyActive, KindInvalidState:
		return false
	case KindNotFound:
		h.Warning(err.Error())
	default:
		h.Error(err.Error())
	}
	return true
}

// ReportFailure surfaces an error that ended a command. Nothing is silent:
// NotFound is a warning, every other error an Error.
func ReportFailure(h ErrorHandler, err error) {
	if h == nil || err == nil {
		return
	}
	if KindOf(err) == KindNotFound {
		h.Warning(err.Error())
		return
	}
	h.Error(err.Error())
}

// CLIHandler handles errors by printing to stdout/stderr using the colors package.
type CLIHandler struct {
	colors     ColorOutput
	mu         sync.Mutex
	inHandling bool
}

type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.colors.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()

	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// colorsOutput adapts the colors package to implement ColorOutput.
type colorsOutput struct{}

func (colorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (colorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (colorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (colorsOutput) Success(msgs ...string) { colors.Success(msgs...) }

// NewDefaultCLIHandler creates a CLI handler printing through the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colorsOutput{})
}
