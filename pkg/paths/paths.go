// Package paths provides centralized path handling for dtovl.
// It implements XDG Base Directory specification compliance for the few
// files dtovl keeps outside configfs: the user config file and the log.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dtovl
	EnvConfigDir = "DTOVL_CONFIG_DIR"
	// EnvStateDir overrides the XDG state directory for dtovl
	EnvStateDir = "DTOVL_STATE_DIR"
)

const (
	// DirName is the directory name for dtovl-specific files
	DirName = "dtovl"
	// ConfigFileName is the name of the user and system config files
	ConfigFileName = "config.toml"
	// LogFileName is the name of the log file
	LogFileName = "dtovl.log"
	// SystemConfigDir holds the system-wide config file
	SystemConfigDir = "/etc/dtovl"
)

// ConfigDir returns the user config directory, $XDG_CONFIG_HOME/dtovl
// unless DTOVL_CONFIG_DIR is set.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, DirName)
}

// StateDir returns the state directory, $XDG_STATE_HOME/dtovl unless
// DTOVL_STATE_DIR is set.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, DirName)
}

// UserConfigFile returns the path of the per-user config file.
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// SystemConfigFile returns the path of the system-wide config file.
func SystemConfigFile() string {
	return filepath.Join(SystemConfigDir, ConfigFileName)
}

// LogFilePath returns the path to the dtovl log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
