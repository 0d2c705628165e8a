package web

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/response"
	"github.com/dmitrymomot/sessionlab/core/validator"
	"github.com/dmitrymomot/sessionlab/internal/login"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

func memberAddPage(v views) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return v.render(viewMemberAdd, page{Title: "Sign up", Form: MemberForm{}})
	}
}

func memberAddHandler(v views, accounts *login.Service, log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var form MemberForm
		if err := ctx.Bind(&form); err != nil {
			errs := validator.ExtractValidationErrors(err)
			if errs == nil {
				return response.Error(response.ErrBadRequest.WithError(err))
			}
			return v.render(viewMemberAdd, page{Title: "Sign up", Form: form, Errors: errs})
		}

		if _, err := accounts.Register(ctx, form.LoginID, form.Name, form.Password); err != nil {
			if errors.Is(err, member.ErrDuplicateLoginID) {
				errs := validator.ValidationErrors{{
					Field:          "LoginID",
					Message:        "login id is already taken",
					TranslationKey: "duplicate",
				}}
				return v.render(viewMemberAdd, page{Title: "Sign up", Form: form, Errors: errs})
			}
			if errors.Is(err, login.ErrPasswordTooLong) {
				errs := validator.ValidationErrors{{
					Field:             "Password",
					Message:           fmt.Sprintf("must be at most %d bytes long", login.MaxPasswordBytes),
					TranslationKey:    "validation.max_bytes",
					TranslationValues: map[string]any{"field": "Password", "max": login.MaxPasswordBytes},
				}}
				return v.render(viewMemberAdd, page{Title: "Sign up", Form: form, Errors: errs})
			}
			log.ErrorContext(ctx, "register member", logger.LoginID(form.LoginID), logger.Error(err))
			return response.Error(err)
		}

		return response.RedirectSeeOther("/")
	}
}
