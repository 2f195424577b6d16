package router

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"

	"github.com/relaykit/relay/core/binder"
	"github.com/relaykit/relay/core/handler"
)

// Route describes a registered route for introspection.
type Route struct {
	Method  string
	Pattern string
}

// StaticServer is the static-file collaborator consumed by the dispatcher.
// Serve reports whether it handled the request; on false the dispatcher
// continues with normal routing.
type StaticServer interface {
	Serve(w http.ResponseWriter, r *http.Request) bool
}

// Upgrader is the WebSocket bridge collaborator. Requests whose path equals
// Path() bypass method routing entirely and are handed to Upgrade after the
// guard pipeline; an Upgrade error is a 400-class fault.
type Upgrader interface {
	Path() string
	Upgrade(w http.ResponseWriter, r *http.Request) error
}

// Mux is the dispatch engine: it owns the route table, the guard pipeline,
// the error-handler slot and the collaborator hooks, and is the sole entry
// point the server runtime invokes. It implements http.Handler.
//
// Register all routes and guards before serving begins; the runtime may
// invoke ServeHTTP concurrently and registration during live traffic is
// caller responsibility.
type Mux[C handler.Context] struct {
	table         *table[C]
	guards        []handler.Guard[C]
	errorHandler  handler.ErrorHandler[C]
	newContext    func(http.ResponseWriter, *http.Request, map[string]string) C
	newState      func(*http.Request) any
	globalHeaders map[string]string
	static        StaticServer
	upgrader      Upgrader
	logger        *slog.Logger
	debug         bool
}

// New creates a dispatcher with the given options.
func New[C handler.Context](opts ...Option[C]) *Mux[C] {
	m := &Mux[C]{
		table:  newTable[C](),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			// Only the default *Context is supported without a factory.
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// Get registers a handler for GET requests.
func (m *Mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.table.register(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *Mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.table.register(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *Mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.table.register(http.MethodPut, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (m *Mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.table.register(http.MethodPatch, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *Mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.table.register(http.MethodDelete, pattern, h)
}

// Options registers a handler for OPTIONS requests.
func (m *Mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.table.register(http.MethodOptions, pattern, h)
}

// Head registers a handler for HEAD requests.
func (m *Mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.table.register(http.MethodHead, pattern, h)
}

// Use appends guards to the pipeline. Guards run strictly in registration
// order before the route handler.
func (m *Mux[C]) Use(guards ...handler.Guard[C]) {
	m.guards = append(m.guards, guards...)
}

// OnError registers the error handler. There is a single slot; the last
// registration wins.
func (m *Mux[C]) OnError(h handler.ErrorHandler[C]) {
	m.errorHandler = h
}

// Routes returns all registered routes.
func (m *Mux[C]) Routes() []Route {
	return m.table.routes()
}

// ServeHTTP dispatches one request. The collaborator runtime may call it
// concurrently; every invocation owns its own context and never shares
// request-scoped state with another.
func (m *Mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	// Static collaborator handles GET lookups before any routing.
	if m.static != nil && r.Method == http.MethodGet && m.static.Serve(ww, r) {
		return
	}

	// Raw path so captured params stay undecoded.
	path := r.URL.EscapedPath()

	// The upgrade path pre-empts method routing, including any route
	// registered at the same path.
	wsBranch := m.upgrader != nil && samePath(m.upgrader.Path(), path)

	var rt *route[C]
	var params map[string]string
	var probe bool

	if !wsBranch {
		if !knownMethods[r.Method] {
			m.fail(m.buildContext(ww, r, nil), ww, ErrMethodNotAllowed)
			return
		}

		var ok bool
		rt, params, ok = m.table.lookup(r.Method, path)
		if !ok {
			// A structurally valid but handler-less OPTIONS/HEAD probe still
			// runs the guard pipeline before its synthesized bare 200.
			probe = (r.Method == http.MethodOptions || r.Method == http.MethodHead) && m.table.matchesAny(path)
			if !probe {
				m.fail(m.buildContext(ww, r, nil), ww, ErrNotFound)
				return
			}
		}
	}

	ctx := m.buildContext(ww, r, params)

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", perr.value,
					"stack", string(perr.stack),
					"method", r.Method,
					"path", r.URL.Path,
				)
				return
			}
			m.fail(ctx, ww, perr)
		}
	}()

	// Guard pipeline: strictly in registration order, each stage awaited to
	// completion before the next.
	for _, g := range m.guards {
		result := g(ctx)
		if result.Allowed() {
			continue
		}
		if res, ok := result.ShortCircuited(); ok {
			if res == nil {
				m.fail(ctx, ww, ErrNilResponse)
				return
			}
			m.render(ctx, ww, r, res)
			return
		}
		rejection, _ := result.Rejected()
		m.fail(ctx, ww, joinFault(ErrBadRequest, rejection))
		return
	}

	// Probe with no short-circuiting guard: bare 200 carrying only the
	// global headers.
	if probe {
		m.applyGlobalHeaders(ww)
		ww.WriteHeader(http.StatusOK)
		return
	}

	if wsBranch {
		if err := m.upgrader.Upgrade(ww, r); err != nil {
			m.fail(ctx, ww, joinFault(ErrUpgradeFailed, err))
		}
		// On success the connection left HTTP; no response body is produced.
		return
	}

	if bodyMethods[r.Method] {
		body, err := binder.Decode(r)
		if err != nil {
			m.fail(ctx, ww, joinFault(ErrBodyDecode, err))
			return
		}
		if receiver, ok := any(ctx).(binder.Receiver); ok {
			receiver.SetBody(body)
		}
	} else if qc, ok := any(ctx).(interface{ QueryParams() map[string]string }); ok {
		qc.QueryParams()
	}

	res := rt.handler(ctx)
	if res == nil {
		m.fail(ctx, ww, ErrNilResponse)
		return
	}
	m.render(ctx, ww, r, res)
}

// buildContext creates the per-request context and injects the shared state
// from the state factory when one is configured.
func (m *Mux[C]) buildContext(w http.ResponseWriter, r *http.Request, params map[string]string) C {
	ctx := m.newContext(w, r, params)
	if m.newState != nil {
		if sc, ok := any(ctx).(interface{ setState(any) }); ok {
			sc.setState(m.newState(r))
		}
	}
	return ctx
}

// render finalizes a response: global headers first, then the response's own
// headers override, then the body.
func (m *Mux[C]) render(ctx C, ww *responseWriter, r *http.Request, res handler.Response) {
	m.applyGlobalHeaders(ww)
	if err := res(ww, r); err != nil {
		m.fail(ctx, ww, err)
	}
}

func (m *Mux[C]) applyGlobalHeaders(ww *responseWriter) {
	if len(m.globalHeaders) == 0 || ww.Written() {
		return
	}
	keys := make([]string, 0, len(m.globalHeaders))
	for key := range m.globalHeaders {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ww.Header().Set(key, m.globalHeaders[key])
	}
}

// fail routes a fault through the registered error handler with a normalized
// record; absent a handler it collapses to an opaque generic failure.
func (m *Mux[C]) fail(ctx C, ww *responseWriter, err error) {
	r := ctx.Request()
	record := &ErrorRecord{
		Err:        err,
		Method:     r.Method,
		URL:        r.URL.String(),
		Header:     r.Header,
		StatusHint: statusHintFor(err),
	}

	if ww.Written() {
		m.logger.Error("fault after response written",
			"error", err,
			"method", record.Method,
			"url", record.URL,
			"status_hint", record.StatusHint,
		)
		return
	}

	m.logger.Debug("dispatch fault",
		"error", err,
		"method", record.Method,
		"url", record.URL,
		"status_hint", record.StatusHint,
	)

	if m.errorHandler != nil {
		m.errorHandler(ctx, record)
		return
	}

	// No handler registered: expose no internal detail unless debugging.
	message := http.StatusText(record.StatusHint)
	if m.debug {
		message = record.Error()
	}
	http.Error(ww, message, record.StatusHint)
}

// joinFault attaches an underlying cause to a taxonomy sentinel while keeping
// both visible to errors.Is.
func joinFault(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return errors.Join(sentinel, cause)
}

// samePath compares two paths under segment normalization.
func samePath(a, b string) bool {
	as, bs := splitPath(a), splitPath(b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
