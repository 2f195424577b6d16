package middleware

import (
	"maps"

	"github.com/relaykit/relay/core/handler"
)

// SecurityHeadersConfig configures the security headers guard. Empty fields
// are omitted from responses.
type SecurityHeadersConfig struct {
	// Skip disables the guard for specific requests, such as webhook
	// endpoints that need permissive policies.
	Skip func(ctx handler.Context) bool

	ContentTypeOptions        string
	FrameOptions              string
	XSSProtection             string
	StrictTransportSecurity   string
	ContentSecurityPolicy     string
	ReferrerPolicy            string
	PermissionsPolicy         string
	CrossOriginOpenerPolicy   string
	CrossOriginEmbedderPolicy string
	CrossOriginResourcePolicy string

	// CustomHeaders are additional headers set on every response.
	CustomHeaders map[string]string

	// IsDevelopment disables HSTS so local HTTP setups keep working.
	IsDevelopment bool
}

// SecurityHeaders creates a guard with a balanced default policy suitable
// for most APIs and server-rendered applications.
func SecurityHeaders[C handler.Context]() handler.Guard[C] {
	return SecurityHeadersWithConfig[C](SecurityHeadersConfig{
		ContentTypeOptions:      "nosniff",
		FrameOptions:            "DENY",
		XSSProtection:           "0",
		StrictTransportSecurity: "max-age=31536000; includeSubDomains",
		ReferrerPolicy:          "strict-origin-when-cross-origin",
	})
}

// SecurityHeadersWithConfig creates a guard that stamps the configured
// security headers onto every response before the handler runs.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Guard[C] {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			headers[key] = value
		}
	}
	set("X-Content-Type-Options", cfg.ContentTypeOptions)
	set("X-Frame-Options", cfg.FrameOptions)
	set("X-XSS-Protection", cfg.XSSProtection)
	set("Strict-Transport-Security", cfg.StrictTransportSecurity)
	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Permissions-Policy", cfg.PermissionsPolicy)
	set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy)
	set("Cross-Origin-Embedder-Policy", cfg.CrossOriginEmbedderPolicy)
	set("Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy)
	maps.Copy(headers, cfg.CustomHeaders)

	return func(ctx C) handler.GuardResult {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Allow()
		}

		responseHeaders := ctx.ResponseWriter().Header()
		for key, value := range headers {
			responseHeaders.Set(key, value)
		}

		return handler.Allow()
	}
}
