// Package main implements the local development server for sqsrelay.
// It serves the forwarder over HTTP so queue messages can be replayed without deploying to AWS.
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

	"github.com/sqsrelay/sqsrelay/internal/app"
	"github.com/sqsrelay/sqsrelay/internal/config"
	"github.com/sqsrelay/sqsrelay/internal/constants"
	"github.com/sqsrelay/sqsrelay/internal/logger"
	"github.com/sqsrelay/sqsrelay/internal/server"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Initialize(constants.Development, cfg.GetLogLevel())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)

	fwd, err := app.Initialize(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("failed to initialize forwarder", "error", err)
		os.Exit(1)
	}

	router := server.NewRouter(fwd, log, cfg.AllowedOrigins)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.Handler(),
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting local sqsrelay server",
		"port", cfg.Port,
		"version", *constants.GetVersion(),
		"upstream", cfg.URL,
		"log_level", cfg.LogLevel,
	)
	log.Debug("forward endpoint available",
		"url", fmt.Sprintf("http://localhost:%d/", cfg.Port),
		"invoke_url", fmt.Sprintf("http://localhost:%d/invoke", cfg.Port),
	)

	if err = serve(sigCtx, srv, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("local server shutdown complete")
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down local server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
