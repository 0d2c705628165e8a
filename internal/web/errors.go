package web

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/response"
)

// errorHandler renders the error page for whatever a handler failed with.
func errorHandler(v views, log *slog.Logger) func(ctx *Context, err error) {
	return func(ctx *Context, err error) {
		httpErr := response.AsHTTPError(err)

		if httpErr.Status >= http.StatusInternalServerError {
			log.ErrorContext(ctx, "request failed",
				logger.Path(ctx.Request().URL.Path),
				logger.Error(err),
			)
		}

		message := httpErr.Message
		if message == "" || httpErr.Status >= http.StatusInternalServerError {
			message = http.StatusText(httpErr.Status)
		}

		resp := v.renderWithStatus(viewError, page{
			Title:   http.StatusText(httpErr.Status),
			Status:  httpErr.Status,
			Message: message,
		}, httpErr.Status)

		if rerr := resp(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
			http.Error(ctx.ResponseWriter(), message, httpErr.Status)
		}
	}
}
