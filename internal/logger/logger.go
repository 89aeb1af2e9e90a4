// Package logger provides structured logging setup for Aegis.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/halvardlabs/aegis/internal/config"
)

// New creates a *slog.Logger from the given Logging config along with a
// Closer that flushes pending records. Output is JSON to stdout with a
// "service" attribute on every record. When cfg.Async is set, records are
// handed off to a buffered worker so logging never blocks a request.
func New(cfg config.Logging) (*slog.Logger, Closer) {
	level := parseLevel(cfg.Level)

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	var closer Closer = nopCloser{}
	if cfg.Async {
		async := NewAsyncHandler(handler, 4096, 1)
		handler = async
		closer = async
	}

	return slog.New(handler).With("service", cfg.Service), closer
}

// parseLevel converts a string log level to slog.Level.
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
