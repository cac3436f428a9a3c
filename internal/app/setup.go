// Package app contains the application setup for the ItemService.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/itemservice/internal/config"
	"github.com/abgdnv/itemservice/internal/service"
	"github.com/abgdnv/itemservice/internal/store"
	"github.com/abgdnv/itemservice/internal/transport/rest"
	"github.com/abgdnv/itemservice/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/itemservice/pkg/config"
	"github.com/abgdnv/itemservice/pkg/server"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Store is an ItemStore that can report its own reachability.
type Store interface {
	store.ItemStore
	Ping(ctx context.Context) error
}

// NewStore builds the store selected by storage.driver. The returned function releases its resources.
func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func(), error) {
	switch cfg.Storage.Driver {
	case pkgconfig.StorageDriverMemory:
		logger.Warn("Using in-memory item store, data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	case pkgconfig.StorageDriverPostgres:
		if cfg.Database.Migrate {
			if err := store.Migrate(cfg.Database.URL); err != nil {
				return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
			}
			logger.Info("Database migrations applied")
		}
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		logger.Info("Successfully connected to the database!")
		return store.NewPgStore(dbPool), dbPool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

type Dependencies struct {
	ItemService service.ItemService
	Store       Store
	// Metrics serves /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
}

func SetupDependencies(itemStore Store, metrics http.Handler, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ItemService: service.NewService(itemStore),
		Store:       itemStore,
		Metrics:     metrics,
		Logger:      logger,
	}
}

// SetupHttpHandler initializes the router, middleware and routes for the ItemService application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return otelhttp.NewHandler(mux, "item-service")
}

// wireRoutes sets up the HTTP routes for the ItemService application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	itemHandler := rest.NewHandler(deps.ItemService, deps.Store, deps.Logger)
	itemHandler.RegisterRoutes(mux)
	if deps.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
}

// SetupHttpServer creates and configures an HTTP server for the ItemService application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps))
}
