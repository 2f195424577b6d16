// Package middleware provides reusable guards for the dispatch pipeline:
// request IDs, structured request logging, CORS with preflight handling,
// security headers, and Prometheus metrics.
//
// Guards run strictly in registration order before the route handler.
// Order matters: register RequestID before Logging so log lines carry the ID.
//
//	mux := router.New[*router.Context]()
//	mux.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.SecurityHeaders[*router.Context](),
//		middleware.CORS[*router.Context](),
//		middleware.Metrics[*router.Context](),
//	)
package middleware
