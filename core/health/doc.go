// Package health provides liveness and readiness handlers for the typed router.
//
//	r.Get("/health/live", health.Liveness[*web.Context])
//	r.Get("/health/ready", health.Readiness[*web.Context](log, checks...))
package health
