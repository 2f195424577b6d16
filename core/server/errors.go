package server

import "errors"

var (
	// ErrServerAlreadyRunning is returned by Start when the server is
	// already serving.
	ErrServerAlreadyRunning = errors.New("server is already running")

	// ErrMissingAddress is returned when no server address is provided.
	ErrMissingAddress = errors.New("server address is required")
)
