package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler sets a custom error handler for the router.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.shared.errorHandler = h
		}
	}
}

// WithMiddleware adds typed middlewares to the router.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithHTTPMiddleware adds net/http middlewares that run before route matching,
// for every request including ones that end in 404 or 405.
func WithHTTPMiddleware[C handler.Context](middlewares ...func(http.Handler) http.Handler) Option[C] {
	return func(m *mux[C]) {
		m.shared.httpMW = append(m.shared.httpMW, middlewares...)
	}
}

// WithContextFactory sets a custom context factory for the router.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		m.shared.newContext = f
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger[C handler.Context](l *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if l != nil {
			m.shared.logger = l
		}
	}
}
