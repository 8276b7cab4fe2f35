// ABOUTME: File-backed slog logger for the TUI
// ABOUTME: Keeps diagnostics off the alternate screen while capturing errors

package logfile

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init points the default slog logger at a file in the config directory.
// An empty configDir discards all log output; the TUI must never write
// to the terminal it is drawing on.
func Init(configDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = io.Discard
	if configDir != "" {
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return err
		}
		f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	slog.SetDefault(slog.New(handler))
	return nil
}

// Close closes the log file, if open.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
