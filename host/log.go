package host

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging opens the log file named in cfg and returns a logger writing
// to it. Logging is diagnostic only: if the file cannot be created, the
// returned logger discards everything.
func SetupLogging(cfg LogConfig) (*slog.Logger, io.Closer) {
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}
	}
	path := cfg.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(os.TempDir(), path)
	}
	f, err := os.Create(path)
	if err != nil {
		return slog.New(slog.DiscardHandler), nopCloser{}
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})
	return slog.New(h), f
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
