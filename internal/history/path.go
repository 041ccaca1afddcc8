package history

import (
	"os"
	"path/filepath"
)

// File names for the history store.
const (
	AppDirName       = "papyrus"
	DefaultFileName  = "history.json"
	FallbackFileName = "papyrus_history.json"
)

// DefaultPath returns the per-user history file, creating its directory.
// When the user config directory cannot be resolved or created, it silently
// returns FallbackPath.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FallbackPath()
	}
	appDir := filepath.Join(dir, AppDirName)
	if err := os.MkdirAll(appDir, 0o750); err != nil {
		return FallbackPath()
	}
	return filepath.Join(appDir, DefaultFileName)
}

// FallbackPath is the history file used when no user directory is available.
func FallbackPath() string {
	return filepath.Join(os.TempDir(), FallbackFileName)
}
