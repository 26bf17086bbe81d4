package infra

import (
	"os"
	"os/user"
	"path/filepath"
)

// ExecMode represents the execution mode of the application.
type ExecMode string

const (
	// ExecModeUser runs as a regular desktop user; switches go through pkexec
	ExecModeUser ExecMode = "user"
	// ExecModeSystem runs as root (sudo, system service)
	ExecModeSystem ExecMode = "system"
)

const (
	// AppName names config directories and log files.
	AppName = "govswitch"

	configFileName = "config.yaml"
)

// ExecModeConfig holds paths and settings based on execution mode.
type ExecModeConfig struct {
	Mode       ExecMode
	ConfigPath string // Full path to config.yaml
	LogPath    string // Suggested log file when logging to a file
	IsRoot     bool   // Whether running as root
}

// DetectExecMode determines the execution mode based on effective UID.
func DetectExecMode() *ExecModeConfig {
	if os.Geteuid() == 0 {
		return &ExecModeConfig{
			Mode:       ExecModeSystem,
			ConfigPath: filepath.Join("/etc", AppName, configFileName),
			LogPath:    filepath.Join("/var/log", AppName+".log"),
			IsRoot:     true,
		}
	}
	return GetUserModeConfig()
}

// String returns a human-readable description of the mode.
func (m ExecMode) String() string {
	switch m {
	case ExecModeSystem:
		return "system (root)"
	case ExecModeUser:
		return "user (pkexec for switches)"
	default:
		return "unknown"
	}
}

// GetUserModeConfig returns user mode config regardless of current euid.
// Honours XDG_CONFIG_HOME and XDG_CACHE_HOME.
func GetUserModeConfig() *ExecModeConfig {
	home := GetRealUserHome()

	configBase := os.Getenv("XDG_CONFIG_HOME")
	if configBase == "" {
		configBase = filepath.Join(home, ".config")
	}
	cacheBase := os.Getenv("XDG_CACHE_HOME")
	if cacheBase == "" {
		cacheBase = filepath.Join(home, ".cache")
	}

	return &ExecModeConfig{
		Mode:       ExecModeUser,
		ConfigPath: filepath.Join(configBase, AppName, configFileName),
		LogPath:    filepath.Join(cacheBase, AppName, AppName+".log"),
		IsRoot:     os.Geteuid() == 0, // Still track actual root status
	}
}

// GetRealUserHome returns the real user's home directory, even when running under sudo.
// Under sudo, os.UserHomeDir() returns /root, so we use SUDO_USER to find the real user.
func GetRealUserHome() string {
	// Check if running under sudo
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		if u, err := user.Lookup(sudoUser); err == nil {
			return u.HomeDir
		}
	}
	// Fall back to default
	home, _ := os.UserHomeDir()
	return home
}
