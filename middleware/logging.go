package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/logger"
)

// DefaultLogExclude lists paths the logging interceptor ignores.
var DefaultLogExclude = []string{"/css/**", "/*.ico", "/error"}

// LoggingConfig configures the logging interceptor.
type LoggingConfig struct {
	// Skip bypasses the middleware; it overrides Exclude when set.
	Skip func(ctx handler.Context) bool

	// Exclude holds PathMatch patterns that are not logged (default: DefaultLogExclude).
	Exclude []string

	// Logger receives the records (default: slog.Default()).
	Logger *slog.Logger

	// LogLevel for successful requests (default: info).
	LogLevel slog.Level

	// SlowRequestThreshold raises the completion record to warn (default: 5s).
	SlowRequestThreshold time.Duration

	// Component names the emitter (default: "http").
	Component string
}

// Logging logs before the handler runs and after the response is written.
//
// Two records are written per request: "request started" when the
// interceptor is entered and "request completed" once the response has
// been rendered, carrying status, size, duration and any error. Server
// errors are logged at error level and 4xx at warn.
func Logging[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Exclude == nil {
		cfg.Exclude = DefaultLogExclude
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}
	skip := cfg.Skip
	if skip == nil {
		skip = func(ctx handler.Context) bool {
			return PathMatchAny(cfg.Exclude, ctx.Request().URL.Path)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()
			requestID, _ := GetRequestID(ctx)

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.RequestID(requestID),
			}
			if req.URL.RawQuery != "" {
				attrs = append(attrs, logger.Query(req.URL.RawQuery))
			}

			cfg.Logger.LogAttrs(ctx, cfg.LogLevel, "request started",
				append(attrs, logger.Event("request"), logger.RemoteAddr(req.RemoteAddr))...)

			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

				var err error
				if resp != nil {
					err = resp(rw, r)
				}

				status := rw.statusCode
				if err != nil && !rw.headerWritten {
					status = statusOf(err)
				}
				duration := time.Since(start)

				done := append(slices.Clone(attrs),
					logger.Event("response"),
					logger.StatusCode(status),
					logger.BytesOut(int64(rw.size)),
					logger.Duration(duration),
				)

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					done = append(done, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
					done = append(done, logger.Error(err))
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					done = append(done, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "request completed", done...)
				return err
			}
		}
	}
}

func statusOf(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// responseWriter records the status and size of what the handler writes.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
