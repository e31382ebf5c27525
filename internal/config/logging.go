package config

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name onto a slog level. Unknown names fall back to info.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// SetupLogging installs the default logger writing to w in the given format.
func SetupLogging(w io.Writer, level, format string) {
	lvl, ok := ParseLevel(level)
	handlerOpts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, handlerOpts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(w, handlerOpts)))
	}
	if !ok {
		slog.Warn("no/invalid log level provided, setting to info", slog.String("level", level))
	}
}
