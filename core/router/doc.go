// Package router is a typed HTTP router built on go-chi/chi.
//
// Routes are matched by chi; each endpoint runs as a handler.HandlerFunc[C]
// against a per-request context created by the configured factory:
//
//	r := router.New[*web.Context](
//		router.WithContextFactory(web.NewContext),
//		router.WithErrorHandler(web.ErrorHandler(views, log)),
//		router.WithHTTPMiddleware[*web.Context](middleware.LogFilter(log)),
//		router.WithMiddleware(middleware.RequestID[*web.Context](middleware.RequestIDConfig{})),
//	)
//
//	r.Get("/items/{itemId}", itemDetail)
//	r.Mount("/metrics", promhttp.Handler())
//
// Panics in handlers are recovered and passed to the error handler as a
// PanicError, unless the response has already been written, in which case
// they are only logged. Unmatched paths and methods reach the error handler
// as ErrNotFound and ErrMethodNotAllowed, both of which carry a status code.
package router
