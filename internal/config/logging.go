package config

import (
	"fmt"
	"io"
	"log/slog"
)

// NewLogger builds the process logger from the log settings.
func NewLogger(w io.Writer, settings Log) (*slog.Logger, error) {
	var level slog.Level
	if settings.Level != "" {
		if err := level.UnmarshalText([]byte(settings.Level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", settings.Level, err)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	switch settings.Format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", settings.Format)
	}
}
