package settings

import (
	"fmt"
	"path/filepath"

	"github.com/cristianoliveira/docview/internal/ports"
)

// Validate checks a single history entry.
func Validate(state DocumentState) error {
	if state.Path == "" || !filepath.IsAbs(state.Path) {
		return fmt.Errorf("invalid path: %q", state.Path)
	}
	if state.Page < 1 {
		return fmt.Errorf("invalid page: %d", state.Page)
	}
	if err := validateDisplayMode(state.DisplayMode); err != nil {
		return err
	}
	return validateZoom(state.Zoom)
}

func validateDisplayMode(mode string) error {
	if mode == "" {
		return nil
	}
	if _, err := ports.ParseDisplayMode(mode); err != nil {
		return fmt.Errorf("invalid display_mode value: %s", mode)
	}
	return nil
}

func validateZoom(zoom float64) error {
	if zoom == 0 || zoom == ports.ZoomFitPage || zoom > 0 {
		return nil
	}
	return fmt.Errorf("invalid zoom value: %v", zoom)
}
