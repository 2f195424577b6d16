package router

import (
	"log/slog"
	"net/http"

	"github.com/relaykit/relay/core/handler"
)

// Option configures a Mux during construction.
type Option[C handler.Context] func(*Mux[C])

// WithErrorHandler registers the error handler at construction time.
// Equivalent to calling OnError.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *Mux[C]) {
		m.errorHandler = h
	}
}

// WithGuards appends guards to the pipeline at construction time. Guards run
// in the order given, before any appended later via Use.
func WithGuards[C handler.Context](guards ...handler.Guard[C]) Option[C] {
	return func(m *Mux[C]) {
		m.guards = append(m.guards, guards...)
	}
}

// WithGlobalHeaders sets headers applied to every response before the
// response's own headers, letting individual responses override them.
func WithGlobalHeaders[C handler.Context](headers map[string]string) Option[C] {
	return func(m *Mux[C]) {
		if m.globalHeaders == nil {
			m.globalHeaders = make(map[string]string, len(headers))
		}
		for key, value := range headers {
			m.globalHeaders[key] = value
		}
	}
}

// WithStateFactory installs a factory invoked once per request; the value it
// returns is exposed to handlers through Context.State. Each request gets its
// own value, so handlers never observe another request's state.
func WithStateFactory[C handler.Context](factory func(*http.Request) any) Option[C] {
	return func(m *Mux[C]) {
		m.newState = factory
	}
}

// WithContextFactory installs a custom context constructor. Required when C
// is anything other than the default *Context.
func WithContextFactory[C handler.Context](factory func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *Mux[C]) {
		m.newContext = factory
	}
}

// WithLogger sets the logger for dispatch diagnostics. The default discards
// everything.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *Mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStatic installs the static-file collaborator, consulted for GET
// requests before routing.
func WithStatic[C handler.Context](s StaticServer) Option[C] {
	return func(m *Mux[C]) {
		m.static = s
	}
}

// WithSocket installs the WebSocket bridge collaborator. Requests to its
// path skip method routing and go through the guard pipeline straight to the
// upgrade.
func WithSocket[C handler.Context](u Upgrader) Option[C] {
	return func(m *Mux[C]) {
		m.upgrader = u
	}
}

// WithDebug makes the fallback error responder include fault detail in the
// body instead of the bare status text. Never enable in production.
func WithDebug[C handler.Context]() Option[C] {
	return func(m *Mux[C]) {
		m.debug = true
	}
}
