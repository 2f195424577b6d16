package router

import (
	"net/http"
	"time"

	"github.com/relaykit/relay/core/binder"
)

// Context is the default request context. A fresh value is created for every
// request and lives from dispatch entry to response return. It exposes the
// raw request, the parameters extracted from the matched template, flattened
// query parameters, the decoded body, cookies and the shared state produced
// by the per-request state factory.
//
// Guards may mutate the context through SetValue; mutations are visible to
// later guards and the handler.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	query  map[string]string
	body   binder.Body
	state  any
	values map[any]any
}

// newContext creates the default context for a request. The params map holds
// exactly the parameters declared by the matched template.
func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	if params == nil {
		params = make(map[string]string)
	}
	return &Context{w: w, r: r, params: params}
}

// Deadline delegates to the request's context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request's context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request's context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns request-scoped values set via SetValue, falling back to the
// request's context.
func (c *Context) Value(key any) any {
	if val, ok := c.values[key]; ok {
		return val
	}
	return c.r.Context().Value(key)
}

// SetValue stores a request-scoped value visible to later guards and the
// handler.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Request returns the raw *http.Request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the http.ResponseWriter for the request.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of the named path parameter extracted from the
// matched template, verbatim and undecoded.
func (c *Context) Param(key string) string {
	return c.params[key]
}

// Params returns the full parameter map. It contains exactly the parameters
// the matched template declares.
func (c *Context) Params() map[string]string {
	return c.params
}

// Query returns the named query parameter. On duplicate keys the last value
// wins.
func (c *Context) Query(key string) string {
	return c.QueryParams()[key]
}

// QueryParams returns the flattened query parameters, parsed on first use.
func (c *Context) QueryParams() map[string]string {
	if c.query == nil {
		values := c.r.URL.Query()
		c.query = make(map[string]string, len(values))
		for key, vals := range values {
			if len(vals) > 0 {
				c.query[key] = vals[len(vals)-1]
			}
		}
	}
	return c.query
}

// Header returns the named request header.
func (c *Context) Header(key string) string {
	return c.r.Header.Get(key)
}

// Cookie returns the named request cookie value. Malformed pairs in the
// Cookie header are dropped during parsing.
func (c *Context) Cookie(name string) (string, bool) {
	for _, ck := range c.r.Cookies() {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}

// Body returns the decoded request body. It is populated for body-bearing
// methods before the handler runs; otherwise it is the zero Body.
func (c *Context) Body() binder.Body {
	return c.body
}

// SetBody implements binder.Receiver; the dispatcher delivers the decoded
// body through it.
func (c *Context) SetBody(b binder.Body) {
	c.body = b
}

// State returns the shared state value produced by the dispatcher's
// per-request state factory, or nil when no factory is configured.
func (c *Context) State() any {
	return c.state
}

// setState injects the state factory output. Called once per request by the
// dispatcher before guards run.
func (c *Context) setState(v any) {
	c.state = v
}
