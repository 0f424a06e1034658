package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/csvgears"
)

// DefaultLogLevel keeps a successful run silent.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the human readable handler.
const DefaultLogFormat = "text"

// NewLogger builds a structured logger writing to w.
//
// Level values: "debug", "info", "warn", "error"
// Format values: "text", "json"
//
// Empty values select the defaults. Anything else is a configuration error.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		Level: lvl,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", DefaultLogFormat:
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", csvgears.ErrConfiguration, format)
	}
	return slog.New(handler), nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", csvgears.ErrConfiguration, level)
	}
}
