package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionlab/core/handler"
)

type requestIDContextKey struct{}

// RequestIDHeader carries the request id on responses.
const RequestIDHeader = "X-Request-ID"

// RequestIDConfig configures the request ID interceptor.
type RequestIDConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool
	// Generator creates new ids (default: UUID v4).
	Generator func() string
	// HeaderName is the response header (default: X-Request-ID).
	HeaderName string
	// UseExisting trusts an incoming header value.
	UseExisting bool
}

// RequestID tags each request with an id (UUID by default). An id already
// placed in the context by LogFilter is reused, so both layers log the same value.
func RequestID[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = RequestIDHeader
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.New().String() }
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			id, _ := RequestIDFromContext(ctx)
			if id == "" && cfg.UseExisting {
				id = ctx.Request().Header.Get(cfg.HeaderName)
			}
			if id == "" {
				id = cfg.Generator()
			}

			ctx.SetValue(requestIDContextKey{}, id)

			return handler.Wrap(next(ctx), func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set(cfg.HeaderName, id)
			})
		}
	}
}

// GetRequestID returns the id stored by RequestID or LogFilter.
func GetRequestID(ctx handler.Context) (string, bool) {
	return RequestIDFromContext(ctx)
}

// RequestIDFromContext reads the request id from any context.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok && id != ""
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}
