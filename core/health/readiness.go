package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/response"
)

// DefaultCheckTimeout bounds each dependency check.
const DefaultCheckTimeout = 2 * time.Second

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness runs every check and answers "READY", or 503 on the first failure.
//
//	r.Get("/health/ready", health.Readiness[*web.Context](log,
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, c := range checks {
			cctx, cancel := context.WithTimeout(ctx, DefaultCheckTimeout)
			err := c.Fn(cctx)
			cancel()

			if err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					slog.String("check", c.Name),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable)
			}
		}
		return response.String("READY")
	}
}
