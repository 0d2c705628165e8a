package health_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionlab/core/health"
	"github.com/dmitrymomot/sessionlab/core/response"
	"github.com/dmitrymomot/sessionlab/core/router"
)

func newRouter(checks ...health.Check) router.Router[*router.Context] {
	r := router.New(router.WithErrorHandler(response.ErrorHandler[*router.Context]))
	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ping", health.NoContent[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](slog.New(slog.DiscardHandler), checks...))
	return r
}

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	r := newRouter()

	w := serve(r, "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	assert.Equal(t, http.StatusNoContent, serve(r, "/ping").Code)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := health.Check{Name: "ok", Fn: func(context.Context) error { return nil }}
	down := health.Check{Name: "redis", Fn: func(context.Context) error { return errors.New("connection refused") }}
	deadline := health.Check{Name: "deadline", Fn: func(ctx context.Context) error {
		if _, has := ctx.Deadline(); !has {
			return errors.New("no deadline")
		}
		return nil
	}}

	w := serve(newRouter(ok, deadline), "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())

	w = serve(newRouter(ok, down), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
