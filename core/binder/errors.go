package binder

import "errors"

// Error variables define the decode failures surfaced by the binder.
// Decode failures are always typed faults, never silently empty bodies.
var (
	// ErrMalformedJSON indicates the request declared a JSON media type but
	// the body could not be parsed as JSON.
	ErrMalformedJSON = errors.New("malformed json body")

	// ErrMalformedForm indicates form or multipart data could not be parsed,
	// typically due to malformed url-encoding or a bad multipart boundary.
	ErrMalformedForm = errors.New("malformed form body")

	// ErrBodyTooLarge indicates the request body exceeded the decoder's
	// size limit for its media type.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrBodyRead indicates the body could not be read from the connection.
	ErrBodyRead = errors.New("failed to read request body")
)
