package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var std = zerolog.Nop()

// Init configures the process logger. Output goes to stdout, the log file, or
// both; at least one of them must be enabled.
func Init(logPath, level string, console bool) error {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	var writers []io.Writer
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime})
	}

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
	}

	if len(writers) == 0 {
		std = zerolog.Nop()
		return nil
	}

	std = zerolog.New(io.MultiWriter(writers...)).
		Level(logLevel).
		With().
		Timestamp().
		Str("app", "sentrywatch").
		Logger()
	return nil
}

// L returns the process logger.
func L() zerolog.Logger {
	return std
}

// With returns a child logger tagged with a component name.
func With(component string) zerolog.Logger {
	return std.With().Str("component", component).Logger()
}

func Debug(format string, args ...interface{}) {
	std.Debug().Msgf(format, args...)
}

func Info(format string, args ...interface{}) {
	std.Info().Msgf(format, args...)
}

func Warn(format string, args ...interface{}) {
	std.Warn().Msgf(format, args...)
}

func Error(format string, args ...interface{}) {
	std.Error().Msgf(format, args...)
}
