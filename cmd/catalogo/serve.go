package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogo/internal/metrics"
	chiTransport "github.com/kailas-cloud/catalogo/internal/transport/chi"
	"github.com/kailas-cloud/catalogo/internal/version"
)

func newServeCmd(rt *runtimeEnv) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog web server",
		Example: `  # Serve the SQLite catalog in ./catalogo.db on port 5000
  catalogo serve

  # Serve on a custom port
  catalogo serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				rt.cfg.HTTP.Port = port
			}
			return serve(cmd.Context(), rt)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides http.port)")

	return cmd
}

func serve(ctx context.Context, rt *runtimeEnv) error {
	cfg, logger := rt.cfg, rt.logger

	logger.Info("Starting catalogo",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", rt.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("Error closing store", zap.Error(err))
		}
	}()

	server, err := chiTransport.NewServer(a.catalog, a.health, logger, chiTransport.Options{
		StaticDir:      cfg.Static.Dir,
		ImagesPrefix:   cfg.Static.ImagesPrefix,
		ImageSeparator: cfg.Catalog.ImageSeparator,
	})
	if err != nil {
		return err
	}

	handler := server.Routes(
		chiTransport.Recoverer(logger),
		middleware.RequestID,
		chiTransport.WideEvent(logger),
		metrics.Middleware(),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}
