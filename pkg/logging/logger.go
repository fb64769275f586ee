// Package logging provides structured logging for the dappregistry system using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so the same
// binary is readable interactively and machine-parseable behind a log collector.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("strategy", "github").Msg("Loading registry")
//
//	// Scope a logger to one component
//	cacheLog := logging.Component("cache")
//	cacheLog.Debug().Str("checksum", sum).Msg("Registry unchanged")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger creates a logger with default settings.
func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr

	if isTerminal(os.Stderr) && getEnv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := getLogLevel()
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Component returns a child of the default logger tagged with a component name.
func Component(name string) *zerolog.Logger {
	logger := defaultLogger.With().Str("component", name).Logger()
	return &logger
}

// Or returns logger when it is non-nil and the default logger otherwise.
func Or(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	return Default()
}

// Named returns a child of logger, or of the default logger when logger is nil,
// tagged with a component name.
func Named(logger *zerolog.Logger, component string) *zerolog.Logger {
	child := Or(logger).With().Str("component", component).Logger()
	return &child
}

// With creates a child logger context from the default logger.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Err creates a new error log event with the given error.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// getLogLevel returns the log level from environment or defaults.
func getLogLevel() zerolog.Level {
	levelStr := getEnv("LOG_LEVEL")
	if levelStr == "" {
		if os.Getenv("DEBUG") != "" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// getEnv reads DAPPREGISTRY_<key> first and falls back to the bare key.
func getEnv(key string) string {
	if v := os.Getenv(EnvPrefix + "_" + key); v != "" {
		return v
	}
	return os.Getenv(key)
}
