package settings

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/docview/internal/config"
)

const historyFilename = "history" + FileExtTOML

// Path returns the filesystem path of the history file. It respects the
// optional history_path override.
func Path() string {
	if override := config.Get("history_path", ""); override != "" {
		return override
	}
	return filepath.Join(resolveConfigDir(), historyFilename)
}

// resolveConfigDir returns the configured config directory, falling back to
// the XDG default if needed.
func resolveConfigDir() string {
	configDir := config.Get("config_dir", "")
	if configDir != "" {
		return configDir
	}
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfigHome, "docview")
}
