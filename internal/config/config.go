// ABOUTME: Runtime configuration for the voltride CLI
// ABOUTME: Loads .env if present, then reads environment with sensible defaults

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when no flag or environment override is set.
const DefaultAPIURL = "http://localhost:8080"

// Config aggregates client-side settings.
type Config struct {
	// APIURL is the backend base URL.
	APIURL string
	// ConfigDir holds the persisted token and debug log.
	ConfigDir string
	// LogLevel controls the file-backed debug logger (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from a .env file (when present) and the
// environment. It never fails; missing values fall back to defaults.
func Load() Config {
	// .env is a developer convenience; absence is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		APIURL:    os.Getenv("VOLTRIDE_API_URL"),
		ConfigDir: os.Getenv("VOLTRIDE_CONFIG_DIR"),
		LogLevel:  os.Getenv("VOLTRIDE_LOG_LEVEL"),
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = DefaultConfigDir()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

// DefaultConfigDir returns the config directory following the XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "voltride")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "voltride")
}
