package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger builds the service-wide structured logger. Every record
// carries the service name so multi-process deployments stay attributable.
func NewJSONLogger(service, level string) *slog.Logger {
	return newLogger(os.Stdout, service, level, false)
}

// NewTextLogger is for interactive tools such as the importer, where JSON
// output is hostile to a human watching the run.
func NewTextLogger(w io.Writer, service, level string) *slog.Logger {
	return newLogger(w, service, level, true)
}

func newLogger(w io.Writer, service, level string, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}

// ParseLevel accepts the usual level spellings; anything unrecognized
// falls back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
