// cmd/web/server.go
// serve() starts the HTTP server and handles graceful shutdown when an OS
// signal is received.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// serve starts the server in the foreground and blocks until SIGINT or
// SIGTERM arrives. A background goroutine then calls Shutdown, which stops
// accepting connections and gives in-flight requests 20 seconds to finish
// before the server gives up on them.
func (app *applicationDependencies) serve() error {
	// Server-level errors (TLS handshakes, bad requests the router never
	// sees) go through the same structured logger as everything else.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	// shutdownErr carries the result of Shutdown back to serve.
	shutdownErr := make(chan error)

	go func() {
		// Buffered so signal.Notify never has to block on delivery.
		quit := make(chan os.Signal, 1)
		// SIGINT is Ctrl+C; SIGTERM is what container runtimes send on stop.
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info("shutting down server", "signal", s.String())

		// Requests still running when the deadline passes are abandoned.
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		shutdownErr <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "address", srv.Addr, "environment", app.config.Environment)

	// ErrServerClosed means Shutdown was called; anything else is fatal.
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// ListenAndServe returns as soon as Shutdown starts; wait for the
	// drain to finish before reporting.
	err = <-shutdownErr
	if err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", srv.Addr)
	return nil
}
