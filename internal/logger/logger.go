// Package logger configures slog for the api, worker, and console
// binaries.
package logger

import (
	"log/slog"
	"os"

	"github.com/mcamden/wildrun/internal/config"
)

// Setup builds the process logger: JSON in production, text everywhere
// else, level taken from config. The result is also installed as the
// slog default so library code logs through the same handler.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithRequestID adds the correlation id to logger context
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
