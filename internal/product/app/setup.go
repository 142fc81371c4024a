// Package app wires the product API: store, service, HTTP routes and metrics.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productapi/internal/config"
	"github.com/abgdnv/productapi/internal/platform/server"
	"github.com/abgdnv/productapi/internal/platform/web"
	"github.com/abgdnv/productapi/internal/product/service"
	"github.com/abgdnv/productapi/internal/product/store"
	"github.com/abgdnv/productapi/internal/product/transport/rest"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	AuthToken      string
	MaxBodyBytes   int64
}

// SetupDependencies creates the in-memory catalog and the service on top of it.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	var initial []store.Product
	if cfg.Catalog.Seed {
		initial = store.SeedProducts()
	}
	pService := service.NewService(store.NewInMemoryStore(initial...))

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
		AuthToken:      cfg.Auth.Token,
		MaxBodyBytes:   cfg.HTTPServer.MaxBodyBytes,
	}
}

// SetupHttpHandler builds the request pipeline: request id, logging, recovery,
// bearer auth and body limit in front of the product routes.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	pApi := rest.NewHandler(deps.ProductService, deps.Logger)

	mux := server.NewChiRouter(deps.Logger)
	mux.Use(web.BearerAuth(deps.AuthToken, deps.Logger))
	mux.Use(web.LimitBody(deps.MaxBodyBytes))

	mux.NotFound(pApi.NotFound)
	mux.MethodNotAllowed(pApi.MethodNotAllowed)
	pApi.RegisterRoutes(mux)

	return mux
}

// SetupHttpServer creates the API server with tracing and HTTP metrics around the pipeline.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	handler := server.Instrument(SetupHttpHandler(deps), "product-api")
	return server.NewHTTPServer(server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}, handler)
}

// RegisterCatalogMetrics exposes the number of products per category as an observable gauge.
func RegisterCatalogMetrics(meter metric.Meter, svc service.ProductService) error {
	_, err := meter.Int64ObservableGauge("catalog.products",
		metric.WithDescription("Number of products in the catalog per category."),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			stats, err := svc.CountByCategory(ctx)
			if err != nil {
				return err
			}
			for category, count := range stats {
				o.Observe(int64(count), metric.WithAttributes(attribute.String("category", category)))
			}
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to register catalog gauge: %w", err)
	}
	return nil
}
