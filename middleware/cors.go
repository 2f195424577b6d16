package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/relaykit/relay/core/handler"
)

// CORSConfig configures the CORS guard.
type CORSConfig struct {
	// Skip disables the guard for specific requests, for example
	// same-origin requests without an Origin header.
	Skip func(ctx handler.Context) bool

	// AllowOrigins lists allowed origins. Use "*" for all origins.
	// Empty means all origins.
	AllowOrigins []string

	// AllowMethods lists allowed HTTP methods for preflight responses.
	AllowMethods []string

	// AllowHeaders lists allowed request headers for preflight responses.
	AllowHeaders []string

	// ExposeHeaders lists response headers browsers may read.
	ExposeHeaders []string

	// AllowCredentials permits cookies and authorization headers.
	// Incompatible with wildcard origins.
	AllowCredentials bool

	// MaxAge is how long preflight results may be cached, in seconds.
	MaxAge int

	// AllowOriginFunc validates origins dynamically and returns the origin
	// value to send back. Takes precedence over AllowOrigins when set.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS creates a CORS guard with permissive defaults: all origins, the
// standard method set, and no credentials.
func CORS[C handler.Context]() handler.Guard[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig creates a CORS guard. Preflight requests short-circuit with
// a 204 carrying the negotiated headers, or a 403 when the origin or
// requested method is not allowed. Simple requests get their response CORS
// headers attached and continue through the pipeline.
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Guard[C] {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOrigins := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOrigins[origin] = true
	}

	return func(ctx C) handler.GuardResult {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Allow()
		}

		req := ctx.Request()
		origin := req.Header.Get("Origin")

		var allowedOrigin string
		allowed := false

		// Origin validation priority: custom function, wildcard/empty,
		// explicit list.
		switch {
		case cfg.AllowOriginFunc != nil:
			allowedOrigin, allowed = cfg.AllowOriginFunc(origin)
		case len(cfg.AllowOrigins) == 0 || allowOrigins["*"]:
			allowedOrigin = "*"
			allowed = true
		case allowOrigins[origin]:
			allowedOrigin = origin
			allowed = true
		}

		// Preflight: OPTIONS plus Access-Control-Request-Method.
		if req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
			requestMethod := req.Header.Get("Access-Control-Request-Method")
			if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
				return handler.ShortCircuit(func(w http.ResponseWriter, r *http.Request) error {
					w.WriteHeader(http.StatusForbidden)
					return nil
				})
			}

			return handler.ShortCircuit(func(w http.ResponseWriter, r *http.Request) error {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowedOrigin)
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				if cfg.AllowCredentials && allowedOrigin != "*" {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				h.Add("Vary", "Origin")
				w.WriteHeader(http.StatusNoContent)
				return nil
			})
		}

		if allowed && origin != "" {
			h := ctx.ResponseWriter().Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			if cfg.AllowCredentials && allowedOrigin != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}
			h.Add("Vary", "Origin")
		}

		return handler.Allow()
	}
}
