// ABOUTME: Tests for runtime configuration loading
// ABOUTME: Covers environment overrides and defaults

package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VOLTRIDE_API_URL", "")
	t.Setenv("VOLTRIDE_CONFIG_DIR", "")
	t.Setenv("VOLTRIDE_LOG_LEVEL", "")

	cfg := Load()

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default API URL, got %q", cfg.APIURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
	if cfg.ConfigDir == "" {
		t.Error("expected a config dir")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VOLTRIDE_API_URL", "http://backend.example.com")
	t.Setenv("VOLTRIDE_CONFIG_DIR", "/tmp/voltride-test")
	t.Setenv("VOLTRIDE_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.APIURL != "http://backend.example.com" {
		t.Errorf("unexpected API URL: %q", cfg.APIURL)
	}
	if cfg.ConfigDir != "/tmp/voltride-test" {
		t.Errorf("unexpected config dir: %q", cfg.ConfigDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unexpected log level: %q", cfg.LogLevel)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "voltride") {
		t.Errorf("unexpected config dir: %q", got)
	}
}
