package router

import (
	"bufio"
	"net"
	"net/http"
)

// responseWriter wraps http.ResponseWriter to track whether a response has
// been written, so faults after a write are logged instead of double-written.
type responseWriter struct {
	http.ResponseWriter
	written bool
	status  int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written returns true if the response has been written.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the HTTP status code of the response.
func (w *responseWriter) Status() int {
	return w.status
}

// Flush implements http.Flusher if the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack is required for WebSocket upgrades through the wrapper.
func (w *responseWriter) Hijack() (c net.Conn, rw *bufio.ReadWriter, err error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	c, rw, err = hj.Hijack()
	if err == nil {
		// The connection left HTTP; nothing may be written through us anymore.
		w.written = true
	}
	return c, rw, err
}
