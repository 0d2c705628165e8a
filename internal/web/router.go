package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/sessionlab/core/cookie"
	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/health"
	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/core/router"
	"github.com/dmitrymomot/sessionlab/internal/auth"
	"github.com/dmitrymomot/sessionlab/internal/item"
	"github.com/dmitrymomot/sessionlab/internal/login"
	"github.com/dmitrymomot/sessionlab/internal/member"
	"github.com/dmitrymomot/sessionlab/internal/metrics"
	"github.com/dmitrymomot/sessionlab/middleware"
)

// Login gates accepted by AUTH_GATE.
const (
	GateInterceptor = "interceptor"
	GateFilter      = "filter"
	GateNone        = "none"
)

var (
	ErrUnknownGate       = errors.New("unknown auth gate")
	ErrMissingDependency = errors.New("web: missing dependency")
)

// Deps is everything the web layer is built from.
type Deps struct {
	Logger   *slog.Logger
	Strategy auth.Strategy
	Accounts *login.Service
	Items    *item.Repository
	Cookies  *cookie.Manager

	// Sessions backs /session-info; without it the page always reports "no session".
	Sessions *httpsession.Manager[auth.SessionData]

	// Metrics defaults to a fresh registry.
	Metrics *metrics.Metrics

	// Checks are run by /health/ready.
	Checks []health.Check

	// Gate selects where anonymous requests are stopped (default: interceptor).
	Gate string
}

// isProbe reports health probe requests, which skip request ids and logging.
func isProbe(ctx handler.Context) bool {
	return strings.HasPrefix(ctx.Request().URL.Path, "/health/")
}

// NewRouter assembles the application: filters around the whole router,
// typed interceptors inside it, and every page and probe route.
func NewRouter(d Deps) (router.Router[*Context], error) {
	switch {
	case d.Strategy == nil:
		return nil, fmt.Errorf("%w: session strategy", ErrMissingDependency)
	case d.Accounts == nil:
		return nil, fmt.Errorf("%w: login service", ErrMissingDependency)
	case d.Items == nil:
		return nil, fmt.Errorf("%w: item repository", ErrMissingDependency)
	case d.Cookies == nil:
		return nil, fmt.Errorf("%w: cookie manager", ErrMissingDependency)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Gate == "" {
		d.Gate = GateInterceptor
	}

	v, err := loadViews()
	if err != nil {
		return nil, err
	}

	authenticated := func(r *http.Request) bool {
		_, ok := middleware.MemberFromContext[member.Member](r.Context())
		return ok
	}

	filters := []func(http.Handler) http.Handler{
		d.Metrics.Filter,
		middleware.LogFilter(d.Logger),
	}
	interceptors := []handler.Middleware[*Context]{
		middleware.RequestID[*Context](middleware.RequestIDConfig{Skip: isProbe}),
		middleware.Logging[*Context](middleware.LoggingConfig{
			Logger:    d.Logger,
			Exclude:   append(slices.Clone(middleware.DefaultLogExclude), "/health/**"),
			Component: "http.request",
		}),
		middleware.CurrentMember[*Context](d.Strategy.Current),
	}

	switch d.Gate {
	case GateInterceptor:
		interceptors = append(interceptors, middleware.LoginCheck[*Context](middleware.LoginCheckConfig{
			Authenticated: authenticated,
			Logger:        d.Logger,
		}))
	case GateFilter:
		filters = append(filters, middleware.LoginCheckFilter(middleware.LoginCheckFilterConfig{
			Authenticated: func(r *http.Request) bool {
				_, ok := d.Strategy.Current(r)
				return ok
			},
			Logger: d.Logger,
		}))
	case GateNone:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGate, d.Gate)
	}

	r := router.New[*Context](
		router.WithContextFactory[*Context](NewContext),
		router.WithErrorHandler[*Context](errorHandler(v, d.Logger)),
		router.WithLogger[*Context](d.Logger),
		router.WithHTTPMiddleware[*Context](filters...),
		router.WithMiddleware(interceptors...),
	)

	r.Get("/", homeHandler(v))

	r.Get("/members/add", memberAddPage(v))
	r.Post("/members/add", memberAddHandler(v, d.Accounts, d.Logger))

	r.Get("/login", loginPage(v))
	r.Post("/login", loginHandler(v, d.Accounts, d.Strategy, d.Metrics, d.Logger))
	r.Post("/logout", logoutHandler(d.Strategy, d.Metrics, d.Logger))

	r.Route("/items", func(r router.Router[*Context]) {
		r.Get("/", itemsHandler(v, d.Items))
		r.Get("/add", addItemPage(v))
		r.Post("/add", addItemHandler(v, d.Items, d.Cookies, d.Logger))
		r.Get("/{itemId}", itemHandler(v, d.Items, d.Cookies))
		r.Get("/{itemId}/edit", editItemPage(v, d.Items))
		r.Post("/{itemId}/edit", editItemHandler(v, d.Items))
	})

	r.Get("/session-info", sessionInfoHandler(d.Sessions, d.Logger))

	r.Get("/health/live", health.Liveness[*Context])
	r.Get("/health/ready", health.Readiness[*Context](d.Logger, d.Checks...))
	r.Mount("/metrics", d.Metrics.Handler())
	r.Mount("/css", http.FileServerFS(staticFiles()))

	return r, nil
}
