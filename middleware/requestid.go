package middleware

import (
	"github.com/google/uuid"

	"github.com/relaykit/relay/core/handler"
)

// requestIDContextKey keys the request ID in the request context.
type requestIDContextKey struct{}

// RequestIDConfig configures the request ID guard.
type RequestIDConfig struct {
	// Skip disables the guard for specific requests.
	Skip func(ctx handler.Context) bool

	// Generator creates new request IDs (default: UUID v4).
	Generator func() string

	// HeaderName is the header carrying the ID (default: "X-Request-ID").
	HeaderName string

	// UseExisting reuses an incoming request's ID instead of generating one.
	UseExisting bool
}

// RequestID creates a request ID guard with default configuration. Each
// request gets a fresh UUID, stored in the context and echoed in the
// response headers.
func RequestID[C handler.Context]() handler.Guard[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID guard with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Guard[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}

	return func(ctx C) handler.GuardResult {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Allow()
		}

		var requestID string
		if cfg.UseExisting {
			requestID = ctx.Request().Header.Get(cfg.HeaderName)
		}
		if requestID == "" {
			requestID = cfg.Generator()
		}

		ctx.SetValue(requestIDContextKey{}, requestID)
		ctx.ResponseWriter().Header().Set(cfg.HeaderName, requestID)

		return handler.Allow()
	}
}

// GetRequestID retrieves the request ID from the request context.
// Returns the request ID and whether one was found.
func GetRequestID(ctx handler.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
