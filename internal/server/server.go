// Package server boots the application and runs the HTTP server with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tanakrit/pawmart/config"
	"github.com/tanakrit/pawmart/internal/kernel"
	"github.com/tanakrit/pawmart/pkg/cache"
	"github.com/tanakrit/pawmart/pkg/database"
	"github.com/tanakrit/pawmart/pkg/logger"
)

// Start loads config, connects the backing stores, and serves HTTP until
// SIGINT/SIGTERM, then drains in-flight requests.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Redis is optional: without it carts are unavailable and reads are
	// uncached, but the catalog and orders still work.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, carts disabled", "error", err.Error())
	}

	r := kernel.NewHTTPKernel()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
