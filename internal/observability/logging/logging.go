package logging

import (
	"io"
	"log/slog"
)

// New builds the process-wide JSON logger. level is one of debug, info,
// warn or error; anything else means info. Every record carries the
// service name and deploy environment.
func New(w io.Writer, level, env string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})

	return slog.New(handler).With(
		slog.String("service", "parish"),
		slog.String("env", env),
	)
}
