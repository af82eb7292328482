// Package logging configures structured logging with tint for local runs and
// plain JSON for everything else.
//
// Usage:
//
//	logging.Setup("local")             // colored, level from LOG_LEVEL env
//	logging.SetupWithLevel("prod", slog.LevelWarn)
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger for the environment at the level given
// by the LOG_LEVEL env var.
func Setup(env string) {
	SetupWithLevel(env, levelFromEnv())
}

// SetupWithLevel installs the default logger at an explicit level. Local
// environments get colored tint output; dev and prod get JSON for log
// collectors.
func SetupWithLevel(env string, level slog.Level) {
	var handler slog.Handler
	if env == "local" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
