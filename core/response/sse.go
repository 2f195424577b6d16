package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/relaykit/relay/core/handler"
)

type sseOptions struct {
	eventName   string
	eventID     string
	idGen       func(any) string
	reconnect   int
	keepAlive   time.Duration
	noKeepAlive bool
}

// EventOption configures an SSE response.
type EventOption func(*sseOptions)

// WithEventName sets the event field on every emitted event.
func WithEventName(name string) EventOption {
	return func(o *sseOptions) {
		o.eventName = name
	}
}

// WithEventID sets a fixed id field on every emitted event.
func WithEventID(id string) EventOption {
	return func(o *sseOptions) {
		o.eventID = id
	}
}

// WithEventIDGenerator derives the id field from each event's payload.
func WithEventIDGenerator(fn func(data any) string) EventOption {
	return func(o *sseOptions) {
		o.idGen = fn
	}
}

// WithReconnectTime advises clients how long to wait before reconnecting.
func WithReconnectTime(milliseconds int) EventOption {
	return func(o *sseOptions) {
		o.reconnect = milliseconds
	}
}

// WithKeepAlive sets the comment-ping interval (default 30s).
func WithKeepAlive(interval time.Duration) EventOption {
	return func(o *sseOptions) {
		o.keepAlive = interval
	}
}

// WithoutKeepAlive disables keep-alive pings.
func WithoutKeepAlive() EventOption {
	return func(o *sseOptions) {
		o.noKeepAlive = true
	}
}

// SSE streams events from the channel as Server-Sent Events until the
// channel closes or the client disconnects. String payloads are sent as-is;
// anything else is JSON-encoded.
func SSE(events <-chan any, opts ...EventOption) handler.Response {
	o := sseOptions{keepAlive: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return nil
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		if o.reconnect > 0 {
			w.Header().Set("Retry", fmt.Sprintf("%d", o.reconnect))
		}
		w.WriteHeader(http.StatusOK)

		_, _ = fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		var keepAliveTicker *time.Ticker
		var keepAliveChan <-chan time.Time
		if !o.noKeepAlive && o.keepAlive > 0 {
			keepAliveTicker = time.NewTicker(o.keepAlive)
			keepAliveChan = keepAliveTicker.C
			defer keepAliveTicker.Stop()
		}

		for {
			select {
			case <-r.Context().Done():
				return nil

			case <-keepAliveChan:
				if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
					return nil
				}
				flusher.Flush()

			case data, ok := <-events:
				if !ok {
					return nil
				}
				if keepAliveTicker != nil {
					keepAliveTicker.Reset(o.keepAlive)
				}
				if err := o.writeEvent(w, data); err != nil {
					return nil
				}
				flusher.Flush()
			}
		}
	}
}

func (o *sseOptions) writeEvent(w io.Writer, data any) error {
	if o.eventName != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", o.eventName); err != nil {
			return err
		}
	}

	eventID := o.eventID
	if o.idGen != nil {
		eventID = o.idGen(data)
	}
	if eventID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", eventID); err != nil {
			return err
		}
	}

	var payload string
	if s, ok := data.(string); ok {
		payload = s
	} else {
		encoded, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(encoded)
	}

	_, err := fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}

// Stream copies the reader to the client with the given content type. The
// reader is closed afterwards when it implements io.Closer.
func Stream(reader io.Reader, contentType string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if c, ok := reader.(io.Closer); ok {
			defer c.Close()
		}

		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)

		_, err := io.Copy(w, reader)
		return err
	}
}
