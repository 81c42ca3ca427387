package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avaldez-dev/storefront-pricing/api/routes"
	"github.com/avaldez-dev/storefront-pricing/internal/catalog"
	"github.com/avaldez-dev/storefront-pricing/internal/discount"
	"github.com/avaldez-dev/storefront-pricing/internal/pricing"
	"github.com/avaldez-dev/storefront-pricing/internal/shipping"
	"github.com/avaldez-dev/storefront-pricing/internal/tax"
	"github.com/avaldez-dev/storefront-pricing/pkg/config"
	"github.com/avaldez-dev/storefront-pricing/pkg/db"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/avaldez-dev/storefront-pricing/pkg/metrics"
	"github.com/avaldez-dev/storefront-pricing/pkg/migrate"
	"github.com/avaldez-dev/storefront-pricing/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	gormDB := dbClient.DB()

	shippingEngine, err := shipping.NewEngine(shipping.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping engine", err)
		os.Exit(1)
	}
	shippingAdjuster, err := shipping.NewAdjuster(shippingEngine)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping adjuster", err)
		os.Exit(1)
	}

	taxAdjuster, err := tax.NewAdjuster(tax.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create tax adjuster", err)
		os.Exit(1)
	}

	discountEngine, err := discount.NewEngine(discount.NewRepository(gormDB), discount.NewUsageStore(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create discount engine", err)
		os.Exit(1)
	}
	discountAdjuster, err := discount.NewAdjuster(discountEngine)
	if err != nil {
		logg.Error(context.Background(), "failed to create discount adjuster", err)
		os.Exit(1)
	}

	pipeline, err := pricing.NewPipeline(logg, pipelineMetrics, shippingAdjuster, taxAdjuster, discountAdjuster)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing pipeline", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(gormDB)
	catalogCache := catalog.NewCache(redisClient, cfg.Catalog.CacheTTL)
	generator, err := catalog.NewGenerator(catalogRepo, discount.NewRepository(gormDB), catalogCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog generator", err)
		os.Exit(1)
	}
	reader, err := catalog.NewReader(catalogRepo, catalogCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog reader", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting pricing api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient, registry,
			pipeline, shippingEngine, discountEngine, generator, reader,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
