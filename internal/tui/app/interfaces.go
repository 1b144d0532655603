// Package app provides TUI application adapters for command wiring.
package app

import (
	"context"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/docview/internal/document"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model tea.Model) error
}

// DefaultProgramRunner is the default implementation of ProgramRunner
// that wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
// All mouse motion is reported so smooth scrolling follows the pointer
// after the middle button was released.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}

// DocumentLoader loads document manifests.
type DocumentLoader interface {
	Load(path string) (*document.Document, error)
}

// DefaultDocumentLoader reads manifests from disk with document.Load.
type DefaultDocumentLoader struct{}

// NewDefaultDocumentLoader creates a new DefaultDocumentLoader.
func NewDefaultDocumentLoader() *DefaultDocumentLoader {
	return &DefaultDocumentLoader{}
}

// Load loads the manifest at path.
func (l *DefaultDocumentLoader) Load(path string) (*document.Document, error) {
	return document.Load(path)
}

// ForwardSearcher maps a source location to marked page regions.
// *synctex.Store implements it.
type ForwardSearcher interface {
	Forward(ctx context.Context, file string, line int) (int, []image.Rectangle, error)
}
