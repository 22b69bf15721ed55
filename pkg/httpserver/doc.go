// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then calls
// http.Server.Shutdown with the configured deadline. Listening and shutdown
// run in an errgroup so either failure ends Run. Errors wrap ErrStart or
// ErrShutdown.
//
// HealthHandler serves liveness and readiness probes as small JSON
// documents.
package httpserver
