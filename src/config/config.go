package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "promptloom"

// GetConfigDir returns $XDG_CONFIG_HOME/promptloom
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetDataDir returns $XDG_DATA_HOME/promptloom, home of the session
// database and the daemon's PID file
func GetDataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// GetQuestionsDir returns the directory searched for user question banks
func GetQuestionsDir() string {
	return filepath.Join(GetConfigDir(), "questions")
}

// GetSettingsPath returns the path of config.toml
func GetSettingsPath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// EnsureConfigDirs creates the config, questions and data directories
func EnsureConfigDirs() error {
	for _, dir := range []string{GetConfigDir(), GetQuestionsDir(), GetDataDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
