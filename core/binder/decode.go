package binder

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMaxJSONSize is the maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// DefaultMaxBodySize is the maximum size for text and binary bodies (10MB).
const DefaultMaxBodySize = 10 << 20

// DefaultMaxMemory is the maximum memory used for parsing multipart forms
// (10MB); larger file parts spill to disk.
const DefaultMaxMemory = 10 << 20

// Decode parses the request body according to its declared content type,
// checked by prefix in priority order: JSON media types decode into a
// structured value, url-encoded and multipart forms flatten into key/value
// maps (file parts kept raw), binary families keep the raw bytes tagged with
// the content type, and anything else is captured as plain text.
//
// An absent or empty body never faults; it yields a zero Body. A body that
// is present but cannot be parsed is a typed fault, never a silent empty.
func Decode(r *http.Request) (Body, error) {
	contentType := r.Header.Get("Content-Type")

	// Strip charset, boundary and other parameters from the media type.
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	mediaType = strings.ToLower(mediaType)

	// Multipart parsing must consume the body stream itself.
	if strings.HasPrefix(mediaType, "multipart/form-data") {
		return decodeMultipart(r)
	}

	body, err := readBody(r, maxSizeFor(mediaType))
	if err != nil {
		return Body{}, err
	}
	if len(body) == 0 {
		return Body{}, nil
	}

	switch {
	case isJSONMediaType(mediaType):
		return decodeJSON(body)

	case strings.HasPrefix(mediaType, "application/x-www-form-urlencoded"):
		return decodeForm(body)

	case isBinaryMediaType(mediaType):
		return Body{Kind: KindBinary, Bytes: body, ContentType: contentType}, nil

	default:
		return Body{Kind: KindText, Text: string(body)}, nil
	}
}

func maxSizeFor(mediaType string) int64 {
	if isJSONMediaType(mediaType) {
		return DefaultMaxJSONSize
	}
	return DefaultMaxBodySize
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isBinaryMediaType(mediaType string) bool {
	return mediaType == "application/octet-stream" ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "video/") ||
		strings.HasPrefix(mediaType, "audio/")
}

// readBody reads the full body with a +1 byte limit to detect oversized
// requests without buffering them whole.
func readBody(r *http.Request, max int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, max+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBodyRead, err)
	}
	if int64(len(body)) > max {
		return nil, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, max)
	}
	return body, nil
}

func decodeJSON(body []byte) (Body, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Body{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return Body{Kind: KindJSON, Value: v}, nil
}

func decodeForm(body []byte) (Body, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return Body{}, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}
	return Body{Kind: KindForm, Form: flatten(values)}, nil
}

func decodeMultipart(r *http.Request) (Body, error) {
	if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
		return Body{}, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}

	b := Body{Kind: KindForm, Form: map[string]string{}}
	if r.MultipartForm != nil {
		b.Form = flatten(r.MultipartForm.Value)
		if len(r.MultipartForm.File) > 0 {
			b.Files = r.MultipartForm.File
		}
	}
	return b, nil
}

// flatten collapses multi-value form fields to their last value.
func flatten(values url.Values) map[string]string {
	flat := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			flat[key] = vals[len(vals)-1]
		}
	}
	return flat
}
