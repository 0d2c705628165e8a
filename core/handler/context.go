package handler

import (
	"context"
	"net/http"
)

// Context is the per-request value every handler and middleware receives.
// Implementations embed the request's context.Context so deadlines and
// cancellation follow the client connection.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns a path parameter such as {itemId}, or "" when absent.
	Param(key string) string
	// SetValue stores a request-scoped value visible to later middlewares and handlers.
	SetValue(key, val any)
}
