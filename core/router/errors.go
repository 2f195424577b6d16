package router

import (
	"errors"
	"fmt"
	"net/http"
)

// Dispatch fault sentinels. Each maps to a status hint carried on the
// ErrorRecord handed to the error handler.
var (
	ErrNotFound         = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrBadRequest       = errors.New("bad request")
	ErrUpgradeFailed    = errors.New("websocket upgrade failed")
	ErrBodyDecode       = errors.New("body decode failed")
	ErrNilResponse      = errors.New("handler returned nil response")

	// Registration errors, raised as panics at startup.
	ErrInvalidPattern   = errors.New("routing pattern must begin with '/'")
	ErrDuplicateRoute   = errors.New("duplicate route registration")
	ErrDuplicateParam   = errors.New("routing pattern contains duplicate param key")
	ErrWildcardPosition = errors.New("wildcard '*' must be the last pattern segment")
	ErrNoContextFactory = errors.New("no context factory provided and C is not *Context")
)

// Error is a typed fault with a first-class HTTP status code. Handlers and
// guards can return or raise it to control the status hint the error handler
// receives; the status is fixed at construction, never bolted on later.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status associated with the fault.
func (e Error) StatusCode() int {
	return e.Status
}

// NewError creates a typed fault with the given status and message.
func NewError(status int, message string) Error {
	return Error{Status: status, Code: http.StatusText(status), Message: message}
}

// ErrorRecord is the normalized fault handed to the registered error handler.
// It captures the underlying error together with the request method, URL,
// headers and a status hint derived from the fault taxonomy.
type ErrorRecord struct {
	Err        error
	Method     string
	URL        string
	Header     http.Header
	StatusHint int
}

// Error implements the error interface.
func (r *ErrorRecord) Error() string {
	return fmt.Sprintf("%s %s: %v", r.Method, r.URL, r.Err)
}

// Unwrap exposes the underlying fault to errors.Is and errors.As.
func (r *ErrorRecord) Unwrap() error {
	return r.Err
}

// statusCode is implemented by errors that carry their own HTTP status.
type statusCode interface {
	StatusCode() int
}

// statusHintFor derives the response status for a fault, falling back to 500.
func statusHintFor(err error) int {
	var sc statusCode
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrUpgradeFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PanicError gives error handlers access to a recovered panic value and the
// stack trace captured at the panic point.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to reach panics raised with error values.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
