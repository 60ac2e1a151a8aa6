package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init builds the process logger and installs it as the slog default.
// With enableOTel, records also go to the global OTel logger provider.
func Init(enableOTel bool, level string) *slog.Logger {
	return initWithWriter(os.Stdout, enableOTel, level)
}

func initWithWriter(w io.Writer, enableOTel bool, level string) *slog.Logger {
	lvl := parseLevel(level)
	stdout := NewTraceContextHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))

	var handler slog.Handler = stdout
	if enableOTel {
		handler = NewMultiHandler(stdout, lvl)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
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
