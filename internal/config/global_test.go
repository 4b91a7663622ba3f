// Where: cli/internal/config/global_test.go
// What: Tests for global config load/save.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := GlobalConfig{Version: 1, Profile: "deploy", Region: "eu-west-1", Quiet: true}

	if err := SaveGlobalConfig(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadDefaultsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("profile: deploy\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("expected defaulted version, got %d", cfg.Version)
	}
	if cfg.Profile != "deploy" {
		t.Fatalf("unexpected profile: %s", cfg.Profile)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n  - broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadGlobalConfig(path); err == nil {
		t.Fatalf("expected parse failure")
	}
}

func TestGlobalConfigPathEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "relative/config.yaml")

	path, err := GlobalConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Fatalf("expected absolute path, got %s", path)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Fatalf("unexpected path: %s", path)
	}
}

func TestGlobalConfigPathDefault(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	path, err := GlobalConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if filepath.Base(filepath.Dir(path)) != ".casm" {
		t.Fatalf("expected ~/.casm location, got %s", path)
	}
}
