package web_test

import (
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/sessionlab/core/cookie"
	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/core/session"
	"github.com/dmitrymomot/sessionlab/internal/auth"
	"github.com/dmitrymomot/sessionlab/internal/item"
	"github.com/dmitrymomot/sessionlab/internal/login"
	"github.com/dmitrymomot/sessionlab/internal/member"
	"github.com/dmitrymomot/sessionlab/internal/metrics"
	"github.com/dmitrymomot/sessionlab/internal/seed"
	"github.com/dmitrymomot/sessionlab/internal/web"
)

var baseURL, _ = url.Parse("http://example.com/")

type app struct {
	handler  http.Handler
	deps     web.Deps
	tokens   *session.Manager[member.Member]
	sessions *httpsession.Manager[auth.SessionData]
}

func newDeps(t *testing.T, strategy string) (web.Deps, *session.Manager[member.Member]) {
	t.Helper()

	members := member.NewRepository()
	items := item.NewRepository()
	accounts := login.NewService(members, login.WithCost(bcrypt.MinCost))
	require.NoError(t, seed.Load(t.Context(), items, accounts))

	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	sessions := httpsession.NewManager[auth.SessionData](httpsession.NewMemoryStore[auth.SessionData]())
	tokens := session.NewManager[member.Member]()

	s, err := auth.New(strategy, auth.Deps{
		Container: sessions,
		Manager:   tokens,
		Cookies:   cookies,
		Members:   members,
	})
	require.NoError(t, err)

	return web.Deps{
		Logger:   slog.New(slog.DiscardHandler),
		Strategy: s,
		Accounts: accounts,
		Items:    items,
		Cookies:  cookies,
		Sessions: sessions,
		Metrics:  metrics.New(),
	}, tokens
}

func newApp(t *testing.T, strategy, gate string) *app {
	t.Helper()

	deps, tokens := newDeps(t, strategy)
	deps.Gate = gate

	h, err := web.NewRouter(deps)
	require.NoError(t, err)

	return &app{handler: h, deps: deps, tokens: tokens, sessions: deps.Sessions}
}

// browser keeps cookies between requests like a real client, without
// following redirects.
type browser struct {
	t   *testing.T
	app *app
	jar *cookiejar.Jar
}

func (a *app) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, app: a, jar: jar}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.jar.Cookies(baseURL) {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.app.handler.ServeHTTP(w, req)
	b.jar.SetCookies(baseURL, w.Result().Cookies())
	return w
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) login() {
	b.t.Helper()
	w := b.post("/login", url.Values{"loginId": {seed.LoginID}, "password": {seed.Password}})
	require.Equal(b.t, http.StatusSeeOther, w.Code, w.Body.String())
}

func (b *browser) cookie(name string) (string, bool) {
	for _, c := range b.jar.Cookies(baseURL) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
