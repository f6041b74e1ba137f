package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	adminmemory "github.com/inkwell-labs/bookstore-api/internal/domains/admin/adapters/memory"
	adminpostgres "github.com/inkwell-labs/bookstore-api/internal/domains/admin/adapters/persistence/postgres"
	adminapp "github.com/inkwell-labs/bookstore-api/internal/domains/admin/application"
	adminports "github.com/inkwell-labs/bookstore-api/internal/domains/admin/ports"
	catalogmemory "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/inkwell-labs/bookstore-api/internal/domains/catalog/ports"
	ordersmemory "github.com/inkwell-labs/bookstore-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/inkwell-labs/bookstore-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/inkwell-labs/bookstore-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/inkwell-labs/bookstore-api/internal/domains/orders/application"
	ordersports "github.com/inkwell-labs/bookstore-api/internal/domains/orders/ports"
	reportingobs "github.com/inkwell-labs/bookstore-api/internal/domains/reporting/adapters/observability"
	reportingapp "github.com/inkwell-labs/bookstore-api/internal/domains/reporting/application"
	"github.com/inkwell-labs/bookstore-api/internal/platform/migrations"
	platformobservability "github.com/inkwell-labs/bookstore-api/internal/platform/observability"
	platformpostgres "github.com/inkwell-labs/bookstore-api/internal/platform/postgres"
	"github.com/inkwell-labs/bookstore-api/internal/platform/uploads"
	transporthttp "github.com/inkwell-labs/bookstore-api/internal/transport/http"
)

// Run boots the bookstore HTTP API with observability and repositories wired.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.App.Name)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.MaybeConnect(ctx, cfg.Postgres.DSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	catalogRepo := buildCatalogRepository(db, logger)
	ordersRepo := buildOrdersRepository(db, logger)
	adminRepo := buildAdminRepository(db, logger)

	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	ordersService := ordersobs.New(
		ordersapp.NewService(ordersRepo, catalogRepo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	reportingService := reportingobs.New(
		reportingapp.NewService(catalogService, ordersService),
		reportingobs.WithLogger(logger),
		reportingobs.WithTracer(instruments.Tracer("internal.reporting.application")),
	)
	authService := adminapp.NewService(adminRepo, cfg.Security.JWTSecret,
		adminapp.WithTokenTTL(cfg.Security.TokenTTL))

	covers, err := uploads.NewStorage(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("preparing upload storage: %w", err)
	}

	handlers := transporthttp.Handlers{
		Books:  transporthttp.NewBookAPI(catalogService, covers),
		Orders: transporthttp.NewOrderAPI(ordersService),
		Admin:  transporthttp.NewAdminAPI(reportingService),
		Auth:   transporthttp.NewAuthAPI(authService),
	}
	router := transporthttp.NewRouter(handlers, authService, transporthttp.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		UploadDir:      covers.Dir(),
		Middleware:     []gin.HandlerFunc{otelgin.Middleware(cfg.App.Name)},
	})

	logger.Info("bookstore API listening", slog.String("addr", cfg.App.HTTPAddr))
	if err := router.Run(cfg.App.HTTPAddr); err != nil {
		logger.Error("bookstore API server exited", slog.String("addr", cfg.App.HTTPAddr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildCatalogRepository(db *gorm.DB, logger *slog.Logger) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	logger.Info("catalog repository configured with postgres")
	return catalogpostgres.NewRepository(db)
}

func buildOrdersRepository(db *gorm.DB, logger *slog.Logger) ordersports.Repository {
	if db == nil {
		return ordersmemory.NewRepository()
	}
	logger.Info("orders repository configured with postgres")
	return orderspostgres.NewRepository(db)
}

func buildAdminRepository(db *gorm.DB, logger *slog.Logger) adminports.Repository {
	if db == nil {
		return adminmemory.NewRepository()
	}
	logger.Info("admin repository configured with postgres")
	return adminpostgres.NewRepository(db)
}
