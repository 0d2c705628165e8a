package web

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/response"
	"github.com/dmitrymomot/sessionlab/internal/auth"
)

// sessionInfoHandler logs what the container session holds. It never
// creates a session.
func sessionInfoHandler(sessions *httpsession.Manager[auth.SessionData], log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		if sessions == nil {
			return response.String("no session")
		}

		sess, err := sessions.Get(ctx, ctx.Request())
		if errors.Is(err, httpsession.ErrNoSession) {
			return response.String("no session")
		}
		if err != nil {
			return response.Error(err)
		}

		attrs := []any{
			slog.Any("session", sess),
			slog.Duration("max_inactive_interval", sess.MaxInactiveInterval),
			slog.Bool("is_new", sess.IsNew()),
		}
		if m := sess.Data.LoginMember; m != nil {
			attrs = append(attrs, logger.MemberID(m.ID), logger.LoginID(m.LoginID))
		}
		log.InfoContext(ctx, "session info", attrs...)

		return response.String("OK")
	}
}
