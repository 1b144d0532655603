package settings

import "os"

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileExtTOML is the file extension for TOML files.
	FileExtTOML = ".toml"
)

// MaxFiles bounds how many documents the history remembers.
const MaxFiles = 50
