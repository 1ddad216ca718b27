// Package paths resolves configuration and data directory locations
// for the restrack server.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names used when no platform directory is
// wanted.
const (
	DefaultConfigDirName = ".restrack"
	DefaultDataDirName   = ".restrack-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RESTRACK_CONFIG_DIR"
	EnvDataDir   = "RESTRACK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be
// overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/restrack (fallback ~/.config/restrack)
// macOS:   ~/Library/Application Support/restrack
// Windows: %APPDATA%/restrack
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "restrack"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "restrack"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "restrack"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/restrack (fallback ~/.local/share/restrack)
// macOS:   ~/Library/Application Support/restrack
// Windows: %APPDATA%/restrack
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "restrack"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "restrack"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "restrack"), nil
	}
}

// ResolveConfigDir picks the configuration directory: explicit value,
// then environment, then the CWD-relative default.
func ResolveConfigDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvConfigDir); v != "" {
		return v
	}
	return DefaultConfigDirName
}

// ResolveDataDir picks the data directory: explicit value, then
// environment, then the CWD-relative default.
func ResolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		return v
	}
	return DefaultDataDirName
}
