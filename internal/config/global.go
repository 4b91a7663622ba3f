// Where: cli/internal/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.casm/config.yaml consistently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// EnvConfigPath overrides the global config file location.
const EnvConfigPath = "CASM_CONFIG_PATH"

// GlobalConfig represents the ~/.casm/config.yaml global configuration.
// Command-line flags take precedence over these defaults.
type GlobalConfig struct {
	Version int    `json:"version"`
	Profile string `json:"profile,omitempty"`
	Region  string `json:"region,omitempty"`
	Quiet   bool   `json:"quiet,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version
// set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{Version: 1}
}

// GlobalConfigPath returns the path to the global config file.
// Respects the CASM_CONFIG_PATH environment variable if set.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(EnvConfigPath)); override != "" {
		if filepath.IsAbs(override) {
			return override, nil
		}
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", err
		}
		return abs, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".casm", "config.yaml"), nil
}

// LoadGlobalConfig reads the config file at path.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, err
	}
	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Version == 0 {
		cfg.Version = DefaultGlobalConfig().Version
	}
	return cfg, nil
}

// SaveGlobalConfig writes the config file at path, creating parent
// directories as needed.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
