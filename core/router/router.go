package router

import (
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/handler"
)

// Router is the typed routing interface used by the application.
// Typed middlewares registered with Use or With run after route matching,
// inside the request's C context. Plain net/http middlewares (see
// WithHTTPMiddleware) run before matching and see every request.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for the listed methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]

	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]

	// Mount attaches a plain http.Handler under pattern. Typed middlewares
	// do not apply to it.
	Mount(pattern string, h http.Handler)
}

// Routes provides route introspection for debugging and startup logs.
type Routes interface {
	Routes() []Route
}

// Route describes a single registered route.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router backed by a chi routing tree.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
