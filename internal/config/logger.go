package config

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// ParseLevel maps a configured level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// SetupLogger configures the global logger based on the configuration.
// Records go to the rotating app.log_file when set, otherwise to fallback
// (nil discards them). The returned func closes the log file.
func SetupLogger(app AppConfig, fallback io.Writer) (*slog.Logger, func() error) {
	w, closeFn := logWriter(app, fallback)
	logLevel := ParseLevel(app.LogLevel)

	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel == slog.LevelDebug, // Add source file/line in debug mode
	}

	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
	return logger, closeFn
}

func logWriter(app AppConfig, fallback io.Writer) (io.Writer, func() error) {
	if app.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   app.LogFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
		return lj, lj.Close
	}
	if fallback == nil {
		return io.Discard, func() error { return nil }
	}
	return fallback, func() error { return nil }
}
