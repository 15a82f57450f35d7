// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// output formats, and record duplication that are applied at logger
// creation time using functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("sandbox ready", slog.String("version", "1.0.0"))
//	logger.Error("script failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "reduce"))
//	logger.Info("call complete") // includes component=reduce
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant.
// Context-unaware functions internally call their context-aware
// counterparts using [DefaultContextProvider], which returns [context.TODO]
// by default.
//
// # Duplicating Output
//
// [WithTee] duplicates every record to additional [slog.Handler] values,
// which is how the command line's --log-file flag mirrors log output to a
// file while the terminal keeps its own format.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the
// configured level are discarded.
package log
