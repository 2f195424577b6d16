package response

import (
	"encoding/json"
	"net/http"

	"github.com/relaykit/relay/core/handler"
)

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return render([]byte(content), "text/plain; charset=utf-8", status)
}

// Bytes creates a response with a custom content type and 200 OK status.
func Bytes(content []byte, contentType string) handler.Response {
	return BytesWithStatus(content, contentType, http.StatusOK)
}

// BytesWithStatus creates a response with a custom content type and status code.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return render(content, contentType, status)
}

// Status creates an empty response with the specified status code.
func Status(code int) handler.Response {
	return render(nil, "", code)
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return render(nil, "", http.StatusNoContent)
}

// JSON creates an application/json response with 200 OK status.
// Encoding happens directly to the response writer.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with a custom status code.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		// 204 and 304 must not carry a body per the HTTP spec.
		switch status {
		case http.StatusNoContent, http.StatusNotModified:
			return nil
		}

		return json.NewEncoder(w).Encode(v)
	}
}

// render is the shared rendering core for byte-backed responses.
func render(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}

		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		if len(content) > 0 {
			_, err := w.Write(content)
			return err
		}
		return nil
	}
}
