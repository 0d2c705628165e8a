package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionlab/core/logger"
)

// Filter is a net/http middleware. Filters wrap the whole router, so they
// run before route matching and also see requests that match no route.
type Filter = func(http.Handler) http.Handler

// DefaultLoginCheckWhitelist lists the SimpleMatch patterns open to anonymous users.
var DefaultLoginCheckWhitelist = []string{
	"/", "/members/add", "/login", "/logout", "/css/*",
	"/health/*", "/metrics",
}

// LogFilter assigns a UUID request id, exposes it in the context and the
// X-Request-ID header, and logs the start and end of every request.
// A panic is logged with the id and then re-raised for outer recovery.
func LogFilter(log *slog.Logger) Filter {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("log_filter"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.New().String()
			ctx := WithRequestID(r.Context(), id)
			r = r.WithContext(ctx)
			w.Header().Set(RequestIDHeader, id)

			start := time.Now()
			attrs := []any{logger.Path(r.URL.Path), logger.RequestID(id)}

			log.InfoContext(ctx, "filter start", attrs...)
			defer func() {
				if rec := recover(); rec != nil {
					log.ErrorContext(ctx, "filter error", append(attrs, slog.Any("panic", rec))...)
					panic(rec)
				}
				log.InfoContext(ctx, "filter end", append(attrs, logger.Elapsed(start))...)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// LoginCheckFilterConfig configures LoginCheckFilter.
type LoginCheckFilterConfig struct {
	// Authenticated reports whether the request belongs to a logged-in member. Required.
	Authenticated func(r *http.Request) bool

	// Whitelist holds SimpleMatch patterns that skip the check
	// (default: DefaultLoginCheckWhitelist).
	Whitelist []string

	// LoginPath is where anonymous users are sent (default: /login).
	LoginPath string

	Logger *slog.Logger
}

// LoginCheckFilter is the filter-level login gate. It redirects anonymous
// requests for non-whitelisted paths, whether or not a route exists.
func LoginCheckFilter(cfg LoginCheckFilterConfig) Filter {
	if cfg.Authenticated == nil {
		panic("middleware: LoginCheckFilter requires Authenticated")
	}
	if cfg.Whitelist == nil {
		cfg.Whitelist = DefaultLoginCheckWhitelist
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	log := cfg.Logger.With(logger.Component("login_check_filter"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SimpleMatchAny(cfg.Whitelist, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			id, _ := RequestIDFromContext(r.Context())
			if !cfg.Authenticated(r) {
				log.InfoContext(r.Context(), "unauthenticated request",
					logger.Path(r.URL.Path), logger.RequestID(id))
				http.Redirect(w, r, LoginRedirectURL(cfg.LoginPath, r.URL.Path), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
