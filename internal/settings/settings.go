// Package settings persists the view state of recently opened documents so a
// document reopens where it was left.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DocumentState is the remembered view of one document.
type DocumentState struct {
	// Path is the absolute manifest path and the key of the entry.
	Path string `toml:"path"`

	// Page is the 1-based page that was shown.
	Page int `toml:"page"`

	// DisplayMode is a ports.DisplayMode name, e.g. "continuous".
	// Empty means keep the window default.
	DisplayMode string `toml:"display_mode,omitempty"`

	// Zoom in percent, or ports.ZoomFitPage. Zero means keep the default.
	Zoom float64 `toml:"zoom,omitempty"`

	ShowToc bool `toml:"show_toc"`

	LastOpened time.Time `toml:"last_opened"`
}

// Settings is the document history, most recently used first.
//
// TOML layout:
//
//	[[file]]
//	path = "/home/me/guide.toml"
//	page = 3
//	display_mode = "continuous"
//	zoom = 125.0
//	show_toc = true
//	last_opened = 2026-01-02T15:04:05Z
type Settings struct {
	Files []DocumentState `toml:"file"`
}

// DefaultSettings returns an empty history.
func DefaultSettings() *Settings {
	return &Settings{}
}

// Lookup returns the remembered state of path.
func (s *Settings) Lookup(path string) (DocumentState, bool) {
	if s == nil {
		return DocumentState{}, false
	}
	idx := s.index(path)
	if idx < 0 {
		return DocumentState{}, false
	}
	return s.Files[idx], true
}

// Remember records state as the most recent entry, replacing an older entry
// for the same path. The history is trimmed to MaxFiles.
func (s *Settings) Remember(state DocumentState) {
	if state.Path == "" {
		return
	}
	if state.LastOpened.IsZero() {
		state.LastOpened = time.Now().UTC()
	}
	if idx := s.index(state.Path); idx >= 0 {
		s.Files = slices.Delete(s.Files, idx, idx+1)
	}
	s.Files = slices.Insert(s.Files, 0, state)
	if len(s.Files) > MaxFiles {
		s.Files = s.Files[:MaxFiles]
	}
}

// Forget drops path from the history.
func (s *Settings) Forget(path string) bool {
	idx := s.index(path)
	if idx < 0 {
		return false
	}
	s.Files = slices.Delete(s.Files, idx, idx+1)
	return true
}

func (s *Settings) index(path string) int {
	return slices.IndexFunc(s.Files, func(f DocumentState) bool { return f.Path == path })
}

// Load reads the history from the configured path.
func Load() (*Settings, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the history at path. A missing file yields an empty history.
// Invalid entries are dropped rather than failing the whole file.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	settings.Files = slices.DeleteFunc(settings.Files, func(f DocumentState) bool {
		return Validate(f) != nil
	})
	return settings, nil
}

// Save writes the history to the configured path.
func Save(settings *Settings) error {
	return SaveTo(Path(), settings)
}

// SaveTo writes the history to path, creating its directory if needed. The
// file is replaced atomically.
func SaveTo(path string, settings *Settings) error {
	for _, f := range settings.Files {
		if err := Validate(f); err != nil {
			return fmt.Errorf("invalid settings: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Chmod(FileModeFile); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
