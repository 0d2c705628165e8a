// Package logger builds *slog.Logger instances and provides attribute helpers
// used across the application.
//
// Create a logger per environment:
//
//	log := logger.New(logger.WithDevelopment("sessionlab"))
//	log := logger.New(logger.WithProduction("sessionlab"), logger.WithLevel(slog.LevelWarn))
//
// Context extractors attach request-scoped values to every *Context call:
//
//	log := logger.New(
//		logger.WithProduction("sessionlab"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id, ok := ctx.Value(requestIDKey{}).(string)
//			return logger.RequestID(id), ok
//		}),
//	)
//
// Attribute helpers return an empty attribute for empty input, so they can be
// passed unconditionally:
//
//	log.Error("login failed", logger.LoginID(id), logger.Error(err))
//
// Token never logs a full secret, only a short prefix.
package logger
