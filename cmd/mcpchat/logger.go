package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/elee1766/mcpchat/src/config"
)

// createChatLogger creates a logger that doesn't interfere with the chat
// by writing to a rotated file instead of stdout/stderr
func createChatLogger(cfg *config.Config) *slog.Logger {
	logging := cfg.Observability.Logging
	path := cfg.LogPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		// If we can't create log directory, use discard logger
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logging.File.MaxSize,
		MaxBackups: logging.File.MaxBackups,
		MaxAge:     logging.File.MaxAge,
		Compress:   logging.File.Compress,
	}

	opts := &slog.HandlerOptions{Level: parseLogLevel(logging.Level)}
	if logging.Format == "text" {
		return slog.New(slog.NewTextHandler(writer, opts))
	}
	return slog.New(slog.NewJSONHandler(writer, opts))
}

// createCLILogger creates a logger for CLI commands that can write to stderr
func createCLILogger(logLevel string) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   parseLogLevel(logLevel),
		NoColor: os.Getenv("NO_COLOR") != "",
	}))
}

// createLogger picks the console or the file logger for cfg.
func createLogger(cfg *config.Config, toFile bool) *slog.Logger {
	if toFile {
		return createChatLogger(cfg)
	}
	if cfg.Observability.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Observability.Logging.Level),
		}))
	}
	return createCLILogger(cfg.Observability.Logging.Level)
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
