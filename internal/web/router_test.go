package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionlab/core/health"
	"github.com/dmitrymomot/sessionlab/core/session"
	"github.com/dmitrymomot/sessionlab/internal/auth"
	"github.com/dmitrymomot/sessionlab/internal/web"
)

var strategies = []string{auth.StrategyContainer, auth.StrategyManager, auth.StrategyCookie}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	for _, strategy := range strategies {
		t.Run(strategy, func(t *testing.T) {
			t.Parallel()

			b := newApp(t, strategy, web.GateInterceptor).browser(t)

			w := b.get("/")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "Sign up")

			w = b.get("/items")
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login?redirectURL=%2Fitems", w.Header().Get("Location"))

			w = b.post("/login?redirectURL=%2Fitems", url.Values{"loginId": {"test"}, "password": {"test!"}})
			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/items", w.Header().Get("Location"))

			w = b.get("/items")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "itemA")
			assert.Contains(t, w.Body.String(), "itemB")

			w = b.get("/")
			assert.Contains(t, w.Body.String(), "Welcome, tester")

			w = b.post("/logout", nil)
			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))

			w = b.get("/items")
			assert.Equal(t, http.StatusFound, w.Code, "logged out")
			assert.Contains(t, b.get("/").Body.String(), "Sign up")
		})
	}
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	b := newApp(t, auth.StrategyManager, web.GateInterceptor).browser(t)

	w := b.post("/login", url.Values{"loginId": {"test"}, "password": {"wrong"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "login id or password does not match")
	assert.Contains(t, w.Body.String(), `value="test"`)

	w = b.post("/login", url.Values{"loginId": {""}, "password": {""}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "field is required")

	_, ok := b.cookie(session.CookieName)
	assert.False(t, ok)
}

func TestLogin_RedirectStaysLocal(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"//evil.example", "https://evil.example", "/\\evil.example", ""} {
		b := newApp(t, auth.StrategyCookie, web.GateInterceptor).browser(t)
		w := b.post("/login?redirectURL="+url.QueryEscape(target), url.Values{"loginId": {"test"}, "password": {"test!"}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"), target)
	}
}

func TestMemberAdd(t *testing.T) {
	t.Parallel()

	b := newApp(t, auth.StrategyContainer, web.GateInterceptor).browser(t)

	assert.Equal(t, http.StatusOK, b.get("/members/add").Code)

	w := b.post("/members/add", url.Values{"loginId": {"test"}, "password": {"pw"}, "name": {"dup"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "login id is already taken")

	w = b.post("/members/add", url.Values{"loginId": {"kim"}, "password": {""}, "name": {"  "}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "field is required")

	w = b.post("/members/add", url.Values{"loginId": {"kim"}, "password": {strings.Repeat("p", 80)}, "name": {"Kim"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "must be at most 72 bytes long")

	w = b.post("/members/add", url.Values{"loginId": {"kim"}, "password": {strings.Repeat("é", 72)}, "name": {"Kim"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "must be at most 72 bytes long")

	w = b.post("/members/add", url.Values{"loginId": {" kim "}, "password": {"secret"}, "name": {"Kim"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = b.post("/login", url.Values{"loginId": {"kim"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, b.get("/").Body.String(), "Welcome, Kim")
}

func TestItems(t *testing.T) {
	t.Parallel()

	b := newApp(t, auth.StrategyContainer, web.GateInterceptor).browser(t)
	b.login()

	w := b.get("/items/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "itemA")
	assert.NotContains(t, w.Body.String(), `class="flash"`)

	assert.Equal(t, http.StatusOK, b.get("/items/add").Code)

	w = b.post("/items/add", url.Values{"itemName": {"itemC"}, "price": {"30000"}, "quantity": {"3"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/items/3", w.Header().Get("Location"))

	w = b.get("/items/3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "itemC")
	assert.Contains(t, w.Body.String(), `class="flash">saved`)
	assert.NotContains(t, b.get("/items/3").Body.String(), `class="flash"`, "flash is shown once")

	w = b.get("/items/3/edit")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="30000"`)

	w = b.post("/items/3/edit", url.Values{"itemName": {"itemC2"}, "price": {"1000"}, "quantity": {"10000"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/items/3", w.Header().Get("Location"))
	assert.Contains(t, b.get("/items/3").Body.String(), "itemC2")

	assert.Equal(t, http.StatusNotFound, b.get("/items/99").Code)
	assert.Equal(t, http.StatusNotFound, b.get("/items/abc").Code)
	assert.Equal(t, http.StatusNotFound, b.post("/items/99/edit", url.Values{}).Code)
}

func TestItems_Validation(t *testing.T) {
	t.Parallel()

	b := newApp(t, auth.StrategyManager, web.GateInterceptor).browser(t)
	b.login()

	tests := []struct {
		name   string
		target string
		form   url.Values
		want   []string
	}{
		{
			name:   "everything missing",
			target: "/items/add",
			form:   url.Values{"itemName": {""}, "price": {""}, "quantity": {""}},
			want:   []string{"field is required"},
		},
		{
			name:   "price out of range",
			target: "/items/add",
			form:   url.Values{"itemName": {"x"}, "price": {"500"}, "quantity": {"100"}},
			want:   []string{"must be between 1000 and 1000000"},
		},
		{
			name:   "quantity capped on add",
			target: "/items/add",
			form:   url.Values{"itemName": {"x"}, "price": {"1000"}, "quantity": {"10000"}},
			want:   []string{"must be at most 9999"},
		},
		{
			name:   "total price too low",
			target: "/items/add",
			form:   url.Values{"itemName": {"x"}, "price": {"1000"}, "quantity": {"5"}},
			want:   []string{"price * quantity must be at least 10000, current value is 5000"},
		},
		{
			name:   "not a number",
			target: "/items/add",
			form:   url.Values{"itemName": {"x"}, "price": {"abc"}, "quantity": {"5"}},
			want:   []string{"invalid value"},
		},
		{
			name:   "total price checked on edit",
			target: "/items/1/edit",
			form:   url.Values{"itemName": {"x"}, "price": {"1000"}, "quantity": {"1"}},
			want:   []string{"current value is 1000"},
		},
	}

	for _, tt := range tests {
		w := b.post(tt.target, tt.form)
		require.Equal(t, http.StatusOK, w.Code, tt.name)
		for _, msg := range tt.want {
			assert.Contains(t, w.Body.String(), msg, tt.name)
		}
	}

	w := b.get("/items")
	assert.NotContains(t, w.Body.String(), `<a href="/items/3">`, "nothing was saved")
}

func TestGates(t *testing.T) {
	t.Parallel()

	t.Run("interceptor ignores unmapped paths", func(t *testing.T) {
		t.Parallel()
		b := newApp(t, auth.StrategyManager, web.GateInterceptor).browser(t)
		assert.Equal(t, http.StatusNotFound, b.get("/nope").Code)
	})

	t.Run("filter guards every path", func(t *testing.T) {
		t.Parallel()
		b := newApp(t, auth.StrategyManager, web.GateFilter).browser(t)

		w := b.get("/nope")
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?redirectURL=%2Fnope", w.Header().Get("Location"))

		assert.Equal(t, http.StatusFound, b.get("/items").Code)
		assert.Equal(t, http.StatusOK, b.get("/").Code)
		assert.Equal(t, http.StatusOK, b.get("/css/site.css").Code)

		b.login()
		assert.Equal(t, http.StatusOK, b.get("/items").Code)
		assert.Equal(t, http.StatusNotFound, b.get("/nope").Code)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		b := newApp(t, auth.StrategyManager, web.GateNone).browser(t)
		assert.Equal(t, http.StatusOK, b.get("/items").Code)
	})
}

func TestManagerStrategy_LogoutLeavesCookie(t *testing.T) {
	t.Parallel()

	a := newApp(t, auth.StrategyManager, web.GateInterceptor)
	b := a.browser(t)
	b.login()

	token, ok := b.cookie(session.CookieName)
	require.True(t, ok)
	assert.Equal(t, 1, a.tokens.Len())

	b.post("/logout", nil)
	assert.Equal(t, 0, a.tokens.Len())

	after, ok := b.cookie(session.CookieName)
	assert.True(t, ok, "the client keeps the stale token")
	assert.Equal(t, token, after)
	assert.Equal(t, http.StatusFound, b.get("/items").Code)
}

func TestSessionInfo(t *testing.T) {
	t.Parallel()

	b := newApp(t, auth.StrategyContainer, web.GateNone).browser(t)

	assert.Equal(t, "no session", b.get("/session-info").Body.String())

	b.login()
	_, ok := b.cookie("SESSIONID")
	require.True(t, ok)
	assert.Equal(t, "OK", b.get("/session-info").Body.String())

	b.post("/logout", nil)
	_, ok = b.cookie("SESSIONID")
	assert.False(t, ok)
	assert.Equal(t, "no session", b.get("/session-info").Body.String())
}

func TestProbes(t *testing.T) {
	t.Parallel()

	deps, _ := newDeps(t, auth.StrategyCookie)
	deps.Checks = []health.Check{{Name: "store", Fn: func(context.Context) error { return errors.New("down") }}}
	h, err := web.NewRouter(deps)
	require.NoError(t, err)
	b := (&app{handler: h, deps: deps}).browser(t)

	w := b.get("/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
	assert.Equal(t, http.StatusServiceUnavailable, b.get("/health/ready").Code)

	b.post("/login", url.Values{"loginId": {"test"}, "password": {"nope"}})
	w = b.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sessionlab_logins_total{result="failure",strategy="cookie"} 1`)

	w = b.get("/css/site.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}

func TestNewRouter_Errors(t *testing.T) {
	t.Parallel()

	deps, _ := newDeps(t, auth.StrategyCookie)

	bad := deps
	bad.Gate = "firewall"
	_, err := web.NewRouter(bad)
	assert.ErrorIs(t, err, web.ErrUnknownGate)

	bad = deps
	bad.Strategy = nil
	_, err = web.NewRouter(bad)
	assert.ErrorIs(t, err, web.ErrMissingDependency)

	bad = deps
	bad.Items = nil
	_, err = web.NewRouter(bad)
	assert.ErrorIs(t, err, web.ErrMissingDependency)
}
