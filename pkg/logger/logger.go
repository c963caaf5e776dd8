// Package logger builds the application's slog loggers from environment
// configuration: JSON for production aggregation, text for local
// development, with static service attributes attached to every record.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`  // Level is one of debug, info, warn, error.
	Format string `env:"LOG_FORMAT" envDefault:"json"` // Format is "json" or "text".
}

// New creates a logger from config. Unknown level or format values fall
// back to info/json rather than failing startup.
func New(cfg Config, attrs ...slog.Attr) *slog.Logger {
	return NewWithOutput(cfg, os.Stdout, attrs...)
}

// NewWithOutput is New with an explicit output writer, used by tests.
func NewWithOutput(cfg Config, w io.Writer, attrs ...slog.Attr) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
