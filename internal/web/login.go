package web

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/response"
	"github.com/dmitrymomot/sessionlab/core/validator"
	"github.com/dmitrymomot/sessionlab/internal/auth"
	"github.com/dmitrymomot/sessionlab/internal/login"
	"github.com/dmitrymomot/sessionlab/internal/metrics"
)

// redirectTarget returns the redirectURL query parameter when it is a
// local path, and "/" otherwise.
func redirectTarget(ctx *Context) string {
	target := ctx.Request().URL.Query().Get("redirectURL")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func loginPage(v views) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return v.render(viewLogin, page{
			Title:       "Log in",
			Form:        LoginForm{},
			RedirectURL: redirectTarget(ctx),
		})
	}
}

func loginHandler(v views, accounts *login.Service, strategy auth.Strategy, m *metrics.Metrics, log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		target := redirectTarget(ctx)
		failed := func(form LoginForm, errs validator.ValidationErrors) handler.Response {
			form.Password = ""
			return v.render(viewLogin, page{Title: "Log in", Form: form, Errors: errs, RedirectURL: target})
		}

		var form LoginForm
		if err := ctx.Bind(&form); err != nil {
			errs := validator.ExtractValidationErrors(err)
			if errs == nil {
				return response.Error(response.ErrBadRequest.WithError(err))
			}
			return failed(form, errs)
		}

		mem, err := accounts.Login(ctx, form.LoginID, form.Password)
		if err != nil {
			if errors.Is(err, login.ErrInvalidCredentials) {
				m.LoginAttempt(strategy.Name(), false)
				return failed(form, validator.ValidationErrors{{
					Message:        login.ErrInvalidCredentials.Error(),
					TranslationKey: "loginFail",
				}})
			}
			return response.Error(err)
		}

		if err := strategy.Login(ctx.ResponseWriter(), ctx.Request(), mem); err != nil {
			log.ErrorContext(ctx, "store login", logger.MemberID(mem.ID), logger.Error(err))
			return response.Error(err)
		}
		m.LoginAttempt(strategy.Name(), true)

		return response.RedirectSeeOther(target)
	}
}

func logoutHandler(strategy auth.Strategy, m *metrics.Metrics, log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		if err := strategy.Logout(ctx.ResponseWriter(), ctx.Request()); err != nil {
			log.WarnContext(ctx, "logout", logger.Error(err))
		}
		m.Logout(strategy.Name())
		return response.RedirectSeeOther("/")
	}
}
