package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - LIGNEE_CONFIG_PATH: config file location (default: ~/.config/lignee.toml)
//   - LIGNEE_HOME: base directory for lignee data (default: ~/.local/share/lignee)
func GetDefaults() (map[string]string, error) {
	configPath, err := fromEnvOrHome("LIGNEE_CONFIG_PATH", ".config", "lignee.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := fromEnvOrHome("LIGNEE_HOME", ".local", "share", "lignee")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// fromEnvOrHome returns $env when set, else the home directory joined with elem.
func fromEnvOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
