package logger

import (
	"log/slog"
	"os"
	"strings"
)

// DefaultLogger is the global structured logger instance used by the CLI
// when no per-call logger is threaded through.
var DefaultLogger *slog.Logger

func init() {
	level := slog.LevelInfo
	if envLevel := os.Getenv("SUPERCOMPACT_LOG_LEVEL"); envLevel != "" {
		level = ParseLevel(envLevel)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	DefaultLogger = slog.New(NewContextHandler(handler))
}

// ParseLevel parses a case-insensitive level name, defaulting to Info for
// anything unrecognized.
func ParseLevel(s string) slog.Level {
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

// SetVerbose enables debug-level logging when verbose is true, otherwise
// resets to info-level. Mirrors the --verbose CLI flag.
func SetVerbose(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	DefaultLogger = slog.New(NewContextHandler(handler))
}

// ForModule builds a logger tagged with the given module name (e.g.
// "selector", "emitter"), for callers that want finer control than
// SetVerbose offers — quieting a noisy stage while debugging another. The
// module's own level comes from moduleConfig (falling back to its default
// if module has no override); there's no caller-stack inspection here, the
// module name is whatever the stage passes in when it asks for its logger.
func ForModule(module string, moduleConfig *ModuleConfig) *slog.Logger {
	level := slog.LevelInfo
	if moduleConfig != nil {
		level = moduleConfig.LevelFor(module)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(NewContextHandler(handler)).With("logger", module)
}
