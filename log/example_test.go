package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/benv/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("sandbox started", slog.String("version", "0.1.0"))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Debug("debug message with caller info")
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))
}

func Example_textFormat() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatText))
	logger.Info("text format message", slog.String("script", "demo.yaml"))
}

func Example_withAttributes() {
	// Create a logger with persistent attributes
	logger := log.Make(os.Stdout)
	logger = logger.With(slog.String("function", "main"))

	logger.Info("call bound")
	logger.Debug("call detail", slog.Int("args", 2))
}

func Example_withContext() {
	type scriptKey struct{}

	ctx := context.WithValue(context.Background(), scriptKey{}, "demo.yaml")

	logger := log.Make(os.Stdout)

	// Use context-aware logging methods
	logger.InfoContext(ctx, "running script")
	logger.DebugContext(ctx, "script detail", slog.String("entry", "main"))
}
