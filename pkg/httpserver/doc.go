// Package httpserver runs an http.Handler with graceful shutdown and
// provides liveness and readiness handlers.
//
// Run blocks until its context is cancelled or SIGINT/SIGTERM arrives. On
// shutdown the base context of every request is cancelled first, so
// server-sent event streams end promptly, then http.Server.Shutdown waits up
// to the configured timeout for handlers to return.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Errors are wrapped with ErrStart and ErrShutdown.
package httpserver
