package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the dispatch layer.
// Use router.Context for the default implementation, or provide a custom type
// through a context factory.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	Query(key string) string
	SetValue(key, val any)
}
