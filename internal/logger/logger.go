// Package logger provides verbose logging for the Citewise CLI.
// When verbose mode is enabled via the --verbose flag, pipeline debug
// messages are printed to stderr so users can follow ingestion and
// answering step by step.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	out io.Writer = os.Stderr
	log           = newLogger(os.Stderr, false)
)

// newLogger builds a console zerolog logger. Disabled loggers drop
// events before formatting, so the quiet path costs nothing.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.Disabled
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(console).With().Timestamp().Logger().Level(level)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(out, v)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return log.GetLevel() != zerolog.Disabled
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	log = newLogger(out, log.GetLevel() != zerolog.Disabled)
}

// Debug logs a pipeline detail message.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Section marks the start of a pipeline phase in the verbose stream.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msg("=== " + name + " ===")
}

// Info logs a notable pipeline event.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn logs a recoverable problem.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}
