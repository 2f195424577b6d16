package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/relaykit/relay/core/handler"
	"github.com/relaykit/relay/core/response"
	"github.com/relaykit/relay/pkg/logger"
)

// Check verifies one dependency, such as a database connection. A nil error
// means the dependency is usable.
type Check func(ctx context.Context) error

// Handler creates a probe handler. With no checks it is a liveness probe and
// always answers "ALIVE". With checks it is a readiness probe: all checks
// must pass for a "READY" answer, any failure is logged and answered with a
// 503.
//
//	mux.Get("/health/live", health.Handler[*router.Context](log))
//	mux.Get("/health/ready", health.Handler[*router.Context](log, dbCheck, cacheCheck))
func Handler[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		if len(checks) == 0 {
			return response.String("ALIVE")
		}

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				return response.StringWithStatus("UNAVAILABLE", http.StatusServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
