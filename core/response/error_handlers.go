package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/handler"
)

type statusCode interface {
	StatusCode() int
}

// AsHTTPError converts any error to an HTTPError. Errors exposing StatusCode()
// map to the matching predefined error; everything else becomes a 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = newHTTPError(status, "error")
		if http.StatusText(status) == "" {
			base = ErrInternalServerError
		}
	}
	return base.WithError(err)
}

// ErrorHandler is the default error handler that returns plain text errors.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Message, httpErr.Status))
}
