package handler

import "net/http"

// Response renders an HTTP response: headers, status code and body.
// A returned error is passed to the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe HTTP request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
// It runs inside the router, after a route has matched.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain wraps endpoint with middlewares so that middlewares[0] runs first.
func Chain[C Context](endpoint HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Wrap returns a Response that runs before, then resp. It is the usual way for
// a middleware to touch the response (headers, cookies) without consuming it.
func Wrap(resp Response, before func(w http.ResponseWriter, r *http.Request)) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		before(w, r)
		if resp == nil {
			return nil
		}
		return resp(w, r)
	}
}
