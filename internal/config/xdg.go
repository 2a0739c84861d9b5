package config

import (
	"os"
	"path/filepath"
)

const appName = "lexsync"

// xdgHome returns the directory named by env, or fallback joined under the
// user's home directory.
func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string {
	return xdgHome("XDG_DATA_HOME", ".local", "share")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// ConfigPath returns override when set, else DefaultConfigPath.
func ConfigPath(override string) string {
	if override != "" {
		return override
	}
	return DefaultConfigPath()
}

// DBPath returns override when set, else DefaultDBPath.
func DBPath(override string) string {
	if override != "" {
		return override
	}
	return DefaultDBPath()
}
