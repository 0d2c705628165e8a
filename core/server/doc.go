// Package server runs an http.Handler with configured timeouts and graceful
// shutdown, designed to be driven from an errgroup:
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	eg.Go(srv.Run(ctx, handler))
package server
