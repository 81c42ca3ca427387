package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avaldez-dev/storefront-pricing/internal/catalog"
	"github.com/avaldez-dev/storefront-pricing/internal/discount"
	"github.com/avaldez-dev/storefront-pricing/internal/worker"
	"github.com/avaldez-dev/storefront-pricing/pkg/config"
	"github.com/avaldez-dev/storefront-pricing/pkg/db"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/avaldez-dev/storefront-pricing/pkg/metrics"
	"github.com/avaldez-dev/storefront-pricing/pkg/migrate"
	"github.com/avaldez-dev/storefront-pricing/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "catalog-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "catalog-worker",
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

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)

	gormDB := dbClient.DB()
	catalogRepo := catalog.NewRepository(gormDB)
	catalogCache := catalog.NewCache(redisClient, cfg.Catalog.CacheTTL)
	generator, err := catalog.NewGenerator(catalogRepo, discount.NewRepository(gormDB), catalogCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog generator", err)
		os.Exit(1)
	}

	catalogJob, err := worker.NewCatalogJob(generator, jobMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog job", err)
		os.Exit(1)
	}

	lock, err := worker.NewRedisLock(redisClient, redisClient.LockKey(catalogJob.Name()), cfg.Catalog.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create worker lock", err)
		os.Exit(1)
	}

	service, err := worker.NewService(worker.ServiceParams{
		Logger:   logg,
		Registry: worker.NewRegistry(catalogJob),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Catalog.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create worker service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting catalog worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "catalog worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "catalog worker shutting down gracefully")
}
