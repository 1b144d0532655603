package app

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/docview/internal/colors"
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/tui/state"
)

// SourceLocation is a source file position to mark with forward search.
type SourceLocation struct {
	File string
	Line int
}

// ViewRequest describes what the viewer should open.
type ViewRequest struct {
	Paths   []string
	Options state.Options
	// Sync, when set, is looked up with the ForwardSearcher and marked on start.
	Sync *SourceLocation
}

// Client defines dependencies needed by the view command.
type Client interface {
	CreateModel(ctx context.Context, req ViewRequest) (*state.Model, error)
	RunProgram(model *state.Model) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	loader        DocumentLoader
	programRunner ProgramRunner
	searcher      ForwardSearcher
}

// NewDefaultClient creates a default TUI client adapter.
// If loader is nil, a DefaultDocumentLoader will be used.
// If programRunner is nil, a DefaultProgramRunner will be used.
// searcher may be nil when no sync index is available.
func NewDefaultClient(loader DocumentLoader, programRunner ProgramRunner, searcher ForwardSearcher) *DefaultClient {
	if loader == nil {
		loader = NewDefaultDocumentLoader()
	}
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{
		loader:        loader,
		programRunner: programRunner,
		searcher:      searcher,
	}
}

// CreateModel loads the requested documents and builds the viewer model.
func (d *DefaultClient) CreateModel(ctx context.Context, req ViewRequest) (*state.Model, error) {
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("no document given")
	}
	docs := make([]*document.Document, 0, len(req.Paths))
	for _, path := range req.Paths {
		doc, err := d.loader.Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	opts := req.Options
	if req.Sync != nil {
		if d.searcher == nil {
			return nil, fmt.Errorf("forward search needs a sync index")
		}
		page, rects, err := d.searcher.Forward(ctx, req.Sync.File, req.Sync.Line)
		if err != nil {
			return nil, fmt.Errorf("forward search %s:%d: %w", req.Sync.File, req.Sync.Line, err)
		}
		opts.ForwardSearch = &state.ForwardSearch{Page: page, Rects: rects}
	}
	return state.NewModel(docs, opts)
}

// RunProgram starts the bubbletea program using the configured ProgramRunner.
func (d *DefaultClient) RunProgram(model *state.Model) error {
	err := d.programRunner.Run(model)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running viewer: %v", err))
		return err
	}
	return nil
}
