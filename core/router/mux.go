package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/logger"
)

// shared holds settings common to a root mux and every router derived from it.
type shared[C handler.Context] struct {
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	httpMW       []func(http.Handler) http.Handler
}

// mux is the private implementation of Router.
type mux[C handler.Context] struct {
	tree        chi.Router
	middlewares []handler.Middleware[C]
	shared      *shared[C]
	inline      bool
	sealed      bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		tree: chi.NewRouter(),
		shared: &shared[C]{
			errorHandler: defaultErrorHandler[C],
			logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.shared.newContext == nil {
		m.shared.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	if len(m.shared.httpMW) > 0 {
		m.tree.Use(m.shared.httpMW...)
	}

	m.tree.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.shared.fail(w, r, ErrNotFound)
	})
	m.tree.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		m.shared.fail(w, r, ErrMethodNotAllowed)
	})

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.tree.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !validMethods[method] {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends typed middlewares. They must be registered before any route.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.sealed {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With returns an inline router sharing the same tree with extra middlewares.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		tree:        m.tree,
		middlewares: append(slices.Clone(m.middlewares), middlewares...),
		shared:      m.shared,
		inline:      true,
	}
}

// Group creates an inline router and passes it to fn.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route creates a sub-router mounted at pattern. It inherits the parent's middlewares.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	m.seal()

	sub := &mux[C]{
		tree:        chi.NewRouter(),
		middlewares: slices.Clone(m.middlewares),
		shared:      m.shared,
	}
	fn(sub)
	m.tree.Mount(pattern, sub.tree)
	return sub
}

func (m *mux[C]) Mount(pattern string, h http.Handler) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	m.seal()
	m.tree.Mount(pattern, h)
}

// Routes lists registered routes, including those of mounted sub-routers.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.tree, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}

func (m *mux[C]) seal() {
	if !m.inline {
		m.sealed = true
	}
}

// handle registers h on the chi tree. An empty method means any method.
func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	m.seal()

	fn := handler.Chain(h, slices.Clone(m.middlewares)...)
	endpoint := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.shared.serve(w, r, fn)
	})

	if method == "" {
		m.tree.Handle(pattern, endpoint)
		return
	}
	m.tree.Method(method, pattern, endpoint)
}

// serve runs a typed handler chain with panic recovery and error handling.
func (s *shared[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := s.newContext(ww, r, urlParams(r))

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				s.logger.Error("panic after response written",
					logger.Component("router"),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(ww.Status()),
					slog.Any("value", panicErr.value),
					slog.String("stack", string(panicErr.stack)),
				)
				return
			}
			s.errorHandler(ctx, panicErr)
		}
	}()

	resp := fn(ctx)
	if resp == nil {
		s.errorHandler(ctx, ErrNilResponse)
		return
	}
	if err := resp(ww, ctx.Request()); err != nil {
		s.errorHandler(ctx, err)
	}
}

// fail renders a routing error (404, 405) through the error handler.
func (s *shared[C]) fail(w http.ResponseWriter, r *http.Request, err error) {
	ww := newResponseWriter(w)
	s.errorHandler(s.newContext(ww, r, nil), err)
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}
