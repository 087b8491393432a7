package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for lrsetup
	EnvConfigDir = "LRSETUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for lrsetup
	EnvStateDir = "LRSETUP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for lrsetup-specific files
	AppDirName = "lrsetup"

	// UserConfigFile is the name of the user configuration file
	UserConfigFile = "config.toml"

	// ProjectConfigFile is the name of the per root dir configuration file
	ProjectConfigFile = "lrsetup.toml"

	// LogFileName is the name of the log file
	LogFileName = "lrsetup.log"
)

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	// xdg caches the environment at init, read the variable directly first
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding logs and other state.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// UserConfigPath returns the full path of the user configuration file.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// ProjectConfigPath returns the configuration file path inside a root dir.
func ProjectConfigPath(rootDir string) string {
	return filepath.Join(rootDir, ProjectConfigFile)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not supported
	return path
}
