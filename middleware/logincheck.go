package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/response"
)

// DefaultLoginCheckExclude lists the PathMatch patterns open to anonymous users.
var DefaultLoginCheckExclude = []string{
	"/", "/members/add", "/login", "/logout",
	"/css/**", "/*.ico", "/error",
	"/health/**", "/metrics",
}

// LoginCheckConfig configures the login gate.
type LoginCheckConfig struct {
	// Authenticated reports whether the request belongs to a logged-in member. Required.
	Authenticated func(r *http.Request) bool

	// Exclude holds PathMatch patterns that skip the check (default: DefaultLoginCheckExclude).
	Exclude []string

	// LoginPath is where anonymous users are sent (default: /login).
	LoginPath string

	Logger *slog.Logger
}

// LoginCheck redirects anonymous requests for protected paths to
// LoginPath?redirectURL=<path>, so the login form can send them back.
func LoginCheck[C handler.Context](cfg LoginCheckConfig) handler.Middleware[C] {
	if cfg.Authenticated == nil {
		panic("middleware: LoginCheck requires Authenticated")
	}
	if cfg.Exclude == nil {
		cfg.Exclude = DefaultLoginCheckExclude
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			r := ctx.Request()
			if PathMatchAny(cfg.Exclude, r.URL.Path) || cfg.Authenticated(r) {
				return next(ctx)
			}

			requestID, _ := GetRequestID(ctx)
			cfg.Logger.InfoContext(ctx, "unauthenticated request",
				logger.Component("login_check"),
				logger.Path(r.URL.Path),
				logger.RequestID(requestID),
			)
			return response.Redirect(LoginRedirectURL(cfg.LoginPath, r.URL.Path))
		}
	}
}

// LoginRedirectURL builds loginPath?redirectURL=target.
func LoginRedirectURL(loginPath, target string) string {
	return loginPath + "?" + url.Values{"redirectURL": {target}}.Encode()
}
