package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/docview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingsTest(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)
	config.Load()

	return filepath.Join(tmpDir, "docview")
}

func TestPath(t *testing.T) {
	dir := setupSettingsTest(t)
	assert.Equal(t, filepath.Join(dir, "history.toml"), Path())

	t.Setenv("DOCVIEW_HISTORY_PATH", "/tmp/elsewhere.toml")
	config.Load()
	assert.Equal(t, "/tmp/elsewhere.toml", Path())
}

func TestRemember(t *testing.T) {
	s := DefaultSettings()
	s.Remember(DocumentState{Path: "/docs/a.toml", Page: 2})
	s.Remember(DocumentState{Path: "/docs/b.toml", Page: 1})
	s.Remember(DocumentState{Path: "/docs/a.toml", Page: 5})
	s.Remember(DocumentState{Page: 9})

	require.Len(t, s.Files, 2)
	assert.Equal(t, "/docs/a.toml", s.Files[0].Path)
	assert.False(t, s.Files[0].LastOpened.IsZero())

	got, ok := s.Lookup("/docs/a.toml")
	require.True(t, ok)
	assert.Equal(t, 5, got.Page)

	assert.True(t, s.Forget("/docs/b.toml"))
	assert.False(t, s.Forget("/docs/b.toml"))
	_, ok = s.Lookup("/docs/b.toml")
	assert.False(t, ok)

	var nilSettings *Settings
	_, ok = nilSettings.Lookup("/docs/a.toml")
	assert.False(t, ok)
}

func TestRememberTrimsHistory(t *testing.T) {
	s := DefaultSettings()
	for i := 0; i < MaxFiles+5; i++ {
		s.Remember(DocumentState{Path: fmt.Sprintf("/docs/%d.toml", i), Page: 1})
	}
	assert.Len(t, s.Files, MaxFiles)
}

func TestSaveAndLoad(t *testing.T) {
	dir := setupSettingsTest(t)

	opened := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	original := DefaultSettings()
	original.Remember(DocumentState{
		Path:        "/docs/guide.toml",
		Page:        3,
		DisplayMode: "single",
		Zoom:        125,
		ShowToc:     true,
		LastOpened:  opened,
	})
	require.NoError(t, Save(original))

	info, err := os.Stat(filepath.Join(dir, "history.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileModeFile, info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	setupSettingsTest(t)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.Files)
}

func TestLoadDropsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.toml")
	data := `
[[file]]
path = "/docs/good.toml"
page = 2

[[file]]
path = "relative.toml"
page = 1

[[file]]
path = "/docs/bad-mode.toml"
page = 1
display_mode = "sideways"
`
	require.NoError(t, os.WriteFile(path, []byte(data), FileModeFile))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	require.Len(t, loaded.Files, 1)
	assert.Equal(t, "/docs/good.toml", loaded.Files[0].Path)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[file]\n"), FileModeFile))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.toml")
	s := &Settings{Files: []DocumentState{{Path: "/docs/a.toml", Page: 0}}}

	err := SaveTo(path, s)
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   DocumentState
		wantErr bool
	}{
		{name: "minimal", state: DocumentState{Path: "/a.toml", Page: 1}},
		{name: "fit page zoom", state: DocumentState{Path: "/a.toml", Page: 1, Zoom: -1}},
		{name: "negative zoom", state: DocumentState{Path: "/a.toml", Page: 1, Zoom: -3}, wantErr: true},
		{name: "known mode", state: DocumentState{Path: "/a.toml", Page: 1, DisplayMode: "continuous-facing"}},
		{name: "unknown mode", state: DocumentState{Path: "/a.toml", Page: 1, DisplayMode: "x"}, wantErr: true},
		{name: "relative path", state: DocumentState{Path: "a.toml", Page: 1}, wantErr: true},
		{name: "no page", state: DocumentState{Path: "/a.toml"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.state)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
