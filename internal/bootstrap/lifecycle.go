package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"thn-proxy/config"
	"thn-proxy/utils/logger"
	"thn-proxy/utils/otel"

	"golang.org/x/sync/errgroup"
)

// Run starts the API and metrics servers and blocks until ctx is done, then shuts them down.
func Run(ctx context.Context) error {
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Init(otelCfg.Enabled, os.Getenv("LOG_LEVEL"))
	log.InfoContext(ctx, "configuration loaded",
		"port", cfg.Port,
		"origin", cfg.OriginBaseURL,
		"cache_ttl", cfg.CacheTTL,
		"content_cache_ttl", cfg.ContentCacheTTL,
		"max_stale", cfg.MaxStale,
		"otel_enabled", otelCfg.Enabled)

	deps, err := BuildDependencies(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	e := NewHTTPServer(gCtx, deps, otelCfg.Enabled, otelCfg.ServiceName)
	address := ":" + cfg.Port
	g.Go(func() error {
		log.InfoContext(gCtx, "starting thn-proxy server", "address", address)
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		metricsServer = NewMetricsServer(deps)
		g.Go(func() error {
			log.InfoContext(gCtx, "starting metrics server", "address", metricsServer.Addr, "path", cfg.MetricsPath)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		errs := []error{e.Shutdown(shutdownCtx)}
		if metricsServer != nil {
			errs = append(errs, metricsServer.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server exited properly")
	return nil
}
