// Package router provides the request dispatch engine: a segment-based route
// table, an ordered guard pipeline, per-request contexts, and fault
// normalization through a single error-handler slot.
//
// Routes use exact segments, :name parameters, and a trailing * wildcard.
// Exact matches always win over parameterized routes, which win over
// wildcard routes; ties among parameterized candidates resolve by longest
// literal prefix, then by literal segment count, then by registration order.
//
// A request flows through the dispatcher in a fixed order: static files,
// WebSocket path pre-emption, method validation, route lookup, guard
// pipeline, body decoding, handler, render. Every fault is normalized into an
// ErrorRecord and routed through the registered error handler; absent one,
// the dispatcher writes an opaque response carrying only the status hint.
//
//	mux := router.New[*router.Context]()
//	mux.Use(middleware.Logging[*router.Context](logger))
//	mux.Get("/items/:id", getItem)
//	http.ListenAndServe(":8080", mux)
package router
