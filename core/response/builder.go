package response

import (
	"log/slog"
	"net/http"

	"github.com/relaykit/relay/core/cookie"
	"github.com/relaykit/relay/core/handler"
)

// Builder accumulates status, headers and cookie directives for a single
// response, then finalizes exactly once via Send or Redirect. After
// finalization the accumulated state is immutable: further mutations are
// ignored with a warning, not a fault.
//
// A Builder belongs to one request and is not safe for concurrent use.
type Builder struct {
	status     int
	headerKeys []string
	headers    map[string]string
	cookies    []string
	logger     *slog.Logger

	finalized bool
	response  handler.Response
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets the logger used for post-finalize mutation warnings.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a response builder with a 200 default status.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		status:  http.StatusOK,
		headers: make(map[string]string),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetStatus sets the response status code. It is effective only before
// finalization.
func (b *Builder) SetStatus(code int) *Builder {
	if b.warnIfFinalized("SetStatus") {
		return b
	}
	b.status = code
	return b
}

// SetHeader sets a response header, preserving first-insertion order across
// keys. Calls after finalization are ignored with a warning.
func (b *Builder) SetHeader(key, value string) *Builder {
	if b.warnIfFinalized("SetHeader") {
		return b
	}
	if _, exists := b.headers[key]; !exists {
		b.headerKeys = append(b.headerKeys, key)
	}
	b.headers[key] = value
	return b
}

// SetCookie appends a Set-Cookie directive built from the standard
// cookie-attribute grammar.
func (b *Builder) SetCookie(name, value string, opts ...cookie.Option) *Builder {
	if b.warnIfFinalized("SetCookie") {
		return b
	}
	b.cookies = append(b.cookies, cookie.Directive(name, value, cookie.Apply(cookie.Options{}, opts...)))
	return b
}

// DeleteCookie appends a directive that removes the named cookie, equivalent
// to setting it with an empty value and Max-Age=0.
func (b *Builder) DeleteCookie(name string, opts ...cookie.Option) *Builder {
	if b.warnIfFinalized("DeleteCookie") {
		return b
	}
	b.cookies = append(b.cookies, cookie.DeleteDirective(name, cookie.Apply(cookie.Options{}, opts...)))
	return b
}

// Redirect finalizes the builder immediately with a Location header,
// bypassing body serialization. Codes outside the 3xx range fall back to 302.
func (b *Builder) Redirect(url string, status int) handler.Response {
	if b.finalized {
		b.warnIfFinalized("Redirect")
		return b.response
	}
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	return b.finalize(func(w http.ResponseWriter, r *http.Request) error {
		b.applyHeaders(w)
		http.Redirect(w, r, url, status)
		return nil
	})
}

// Send finalizes the builder with the given payload. Strings are rendered as
// plain text and any other payload is JSON-encoded, with one deliberate
// exception: []byte ships verbatim as application/octet-stream rather than
// being base64-wrapped in a JSON string, so raw payloads survive untouched
// (SendBytes takes an explicit content type). Accumulated headers are
// applied first and cookie directives appended last; the dispatcher layers
// global headers underneath.
func (b *Builder) Send(payload any) handler.Response {
	if b.finalized {
		b.warnIfFinalized("Send")
		return b.response
	}

	var body handler.Response
	switch p := payload.(type) {
	case nil:
		body = render(nil, "", b.status)
	case string:
		body = StringWithStatus(p, b.status)
	case []byte:
		body = BytesWithStatus(p, "application/octet-stream", b.status)
	default:
		body = JSONWithStatus(p, b.status)
	}

	return b.finalize(func(w http.ResponseWriter, r *http.Request) error {
		b.applyHeaders(w)
		return body(w, r)
	})
}

// SendBytes finalizes the builder with a raw payload under the given content
// type, for callers that know the octet identity of what they ship.
func (b *Builder) SendBytes(payload []byte, contentType string) handler.Response {
	if b.finalized {
		b.warnIfFinalized("SendBytes")
		return b.response
	}

	body := BytesWithStatus(payload, contentType, b.status)
	return b.finalize(func(w http.ResponseWriter, r *http.Request) error {
		b.applyHeaders(w)
		return body(w, r)
	})
}

// Finalized reports whether the builder has produced its response.
func (b *Builder) Finalized() bool {
	return b.finalized
}

func (b *Builder) finalize(res handler.Response) handler.Response {
	b.finalized = true
	b.response = res
	return res
}

// applyHeaders writes builder headers in insertion order, then appends
// cookie directives. Header values set here override any global header of
// the same name written earlier in the render path.
func (b *Builder) applyHeaders(w http.ResponseWriter) {
	for _, key := range b.headerKeys {
		w.Header().Set(key, b.headers[key])
	}
	for _, directive := range b.cookies {
		w.Header().Add("Set-Cookie", directive)
	}
}

// warnIfFinalized reports whether the builder is already finalized, logging
// the ignored mutation when it is.
func (b *Builder) warnIfFinalized(op string) bool {
	if !b.finalized {
		return false
	}
	b.logger.Warn("response builder mutated after finalize, ignoring", "op", op)
	return true
}
