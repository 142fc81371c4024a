// Package main runs the product catalog HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/productapi/internal/config"
	"github.com/abgdnv/productapi/internal/platform/bootstrap"
	"github.com/abgdnv/productapi/internal/platform/server"
	"github.com/abgdnv/productapi/internal/platform/telemetry"
	"github.com/abgdnv/productapi/internal/product/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, wires telemetry and the catalog, and serves the API
// and the optional ops listener until ctx is cancelled.
func run(ctx context.Context) error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(os.Stdout, cfg.Log.Level)
	slog.SetDefault(logger)

	tp, err := telemetry.NewTracerProvider(ctx, config.ServiceName, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer shutdownWithTimeout(cfg, logger, "tracer provider", tp.Shutdown)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mp, err := telemetry.NewMeterProvider(config.ServiceName, registry)
	if err != nil {
		return fmt.Errorf("failed to set up metrics: %w", err)
	}
	defer shutdownWithTimeout(cfg, logger, "meter provider", mp.Shutdown)

	deps := app.SetupDependencies(cfg, logger)
	if err := app.RegisterCatalogMetrics(mp.Meter(config.ServiceName), deps.ProductService); err != nil {
		return err
	}
	httpServer := app.SetupHttpServer(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)

	serve(gCtx, g, cfg, logger, "HTTP", httpServer)

	if cfg.Ops.Enabled {
		opsServer := &http.Server{
			Addr:              cfg.Ops.Addr,
			Handler:           server.NewOpsHandler(registry),
			ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
		}
		serve(gCtx, g, cfg, logger, "Ops", opsServer)
	} else {
		logger.Info("Ops server is disabled")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// serve starts srv in g and shuts it down gracefully once ctx is cancelled.
func serve(ctx context.Context, g *errgroup.Group, cfg *config.Config, logger *slog.Logger, name string, srv *http.Server) {
	g.Go(func() error {
		logger.Info(name+" server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func shutdownWithTimeout(cfg *config.Config, logger *slog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Error("Failed to shut down "+name, "error", err)
	}
}
