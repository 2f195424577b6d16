package middleware

import (
	"log/slog"

	"github.com/relaykit/relay/core/handler"
	"github.com/relaykit/relay/pkg/logger"
)

// LoggingConfig configures the request logging guard.
type LoggingConfig struct {
	// Skip disables the guard for specific requests, such as health checks.
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default()).
	Logger *slog.Logger

	// Level for request logging (default: slog.LevelInfo).
	Level slog.Level

	// Component name for structured logging (default: "http").
	Component string
}

// Logging creates a request logging guard with default configuration.
// It logs one structured line per inbound request.
func Logging[C handler.Context]() handler.Guard[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging guard with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Guard[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging guard with custom configuration.
// Register it early in the pipeline, after RequestID, so the request ID is
// available for correlation.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Guard[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(ctx C) handler.GuardResult {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Allow()
		}

		req := ctx.Request()
		requestID, _ := GetRequestID(ctx)

		cfg.Logger.LogAttrs(ctx, cfg.Level, "request received",
			logger.Component(cfg.Component),
			logger.Event("request"),
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.ClientIP(req.RemoteAddr),
			logger.UserAgent(req.UserAgent()),
			logger.RequestID(requestID),
			logger.BytesIn(req.ContentLength),
		)

		return handler.Allow()
	}
}
