package main

import (
	"io"
	"log/slog"

	"github.com/lepinkainen/humanlog"
)

// newLogger returns a human-readable logger for development and a JSON
// logger for every other environment.
func newLogger(w io.Writer, environment string) *slog.Logger {
	var handler slog.Handler
	if environment == "development" {
		handler = humanlog.NewHandler(w, &humanlog.Options{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler).With(slog.String("version", appVersion))
}
