package app

import (
	"context"
	"errors"
	"image"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guidePath = "../../document/testdata/guide.toml"

type mockLoader struct {
	paths []string
	err   error
}

func (m *mockLoader) Load(path string) (*document.Document, error) {
	m.paths = append(m.paths, path)
	if m.err != nil {
		return nil, m.err
	}
	return document.Load(guidePath)
}

type mockRunner struct {
	ran tea.Model
	err error
}

func (m *mockRunner) Run(model tea.Model) error {
	m.ran = model
	return m.err
}

type mockSearcher struct {
	file string
	line int
	err  error
}

func (m *mockSearcher) Forward(_ context.Context, file string, line int) (int, []image.Rectangle, error) {
	m.file, m.line = file, line
	if m.err != nil {
		return 0, nil, m.err
	}
	return 2, []image.Rectangle{image.Rect(0, 1, 5, 2)}, nil
}

func TestCreateModelLoadsEveryPath(t *testing.T) {
	loader := &mockLoader{}
	client := NewDefaultClient(loader, nil, nil)

	model, err := client.CreateModel(context.Background(), ViewRequest{Paths: []string{"a.toml", "b.toml"}})
	require.NoError(t, err)
	t.Cleanup(func() { model.Session().Close() })

	assert.Equal(t, []string{"a.toml", "b.toml"}, loader.paths)
	assert.Len(t, model.Session().Tabs(), 2)
}

func TestCreateModelErrors(t *testing.T) {
	client := NewDefaultClient(&mockLoader{}, nil, nil)
	_, err := client.CreateModel(context.Background(), ViewRequest{})
	assert.Error(t, err)

	loadErr := errors.New("bad manifest")
	client = NewDefaultClient(&mockLoader{err: loadErr}, nil, nil)
	_, err = client.CreateModel(context.Background(), ViewRequest{Paths: []string{"x"}})
	assert.ErrorIs(t, err, loadErr)

	_, err = client.CreateModel(context.Background(), ViewRequest{
		Paths: []string{"x"},
		Sync:  &SourceLocation{File: "main.tex", Line: 3},
	})
	assert.ErrorIs(t, err, loadErr)

	client = NewDefaultClient(&mockLoader{}, nil, nil)
	_, err = client.CreateModel(context.Background(), ViewRequest{
		Paths: []string{"x"},
		Sync:  &SourceLocation{File: "main.tex", Line: 3},
	})
	assert.ErrorContains(t, err, "sync index")

	syncErr := errors.New("no records")
	client = NewDefaultClient(&mockLoader{}, nil, &mockSearcher{err: syncErr})
	_, err = client.CreateModel(context.Background(), ViewRequest{
		Paths: []string{"x"},
		Sync:  &SourceLocation{File: "main.tex", Line: 3},
	})
	assert.ErrorIs(t, err, syncErr)
}

func TestCreateModelWithForwardSearch(t *testing.T) {
	searcher := &mockSearcher{}
	client := NewDefaultClient(&mockLoader{}, nil, searcher)

	model, err := client.CreateModel(context.Background(), ViewRequest{
		Paths: []string{"x"},
		Sync:  &SourceLocation{File: "main.tex", Line: 12},
	})
	require.NoError(t, err)
	t.Cleanup(func() { model.Session().Close() })

	assert.Equal(t, "main.tex", searcher.file)
	assert.Equal(t, 12, searcher.line)
	assert.NotNil(t, model.Init())
}

func TestRunProgramUsesRunner(t *testing.T) {
	runner := &mockRunner{}
	client := NewDefaultClient(&mockLoader{}, runner, nil)
	model, err := client.CreateModel(context.Background(), ViewRequest{Paths: []string{"x"}})
	require.NoError(t, err)
	t.Cleanup(func() { model.Session().Close() })

	require.NoError(t, client.RunProgram(model))
	assert.Same(t, model, runner.ran)

	runner.err = errors.New("no tty")
	assert.Error(t, client.RunProgram(model))
}

func TestNewDefaultClientDefaults(t *testing.T) {
	client := NewDefaultClient(nil, nil, nil)

	assert.IsType(t, &DefaultDocumentLoader{}, client.loader)
	assert.IsType(t, &DefaultProgramRunner{}, client.programRunner)
	assert.Nil(t, client.searcher)
}
