package handler

import "net/http"

// Response is a finalized response ready to be rendered. It sets headers,
// status code, and writes the response body. Rendering errors are handed to
// the dispatcher's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe HTTP request handler with custom context support.
// The handler blocks until its response is ready; the dispatcher awaits it by
// calling it, so there is no separate pending-result shape to probe for.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles faults raised during request dispatch. The dispatcher
// always passes a *router.ErrorRecord which wraps the underlying error
// together with the request method, URL, headers and a status hint.
type ErrorHandler[C Context] func(ctx C, err error)
