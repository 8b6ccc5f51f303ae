package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/ratewise-backend/api/controllers"
	"github.com/angelmondragon/ratewise-backend/api/routes"
	"github.com/angelmondragon/ratewise-backend/internal/catalog"
	"github.com/angelmondragon/ratewise-backend/internal/pricing"
	"github.com/angelmondragon/ratewise-backend/internal/ratematrix"
	"github.com/angelmondragon/ratewise-backend/pkg/config"
	"github.com/angelmondragon/ratewise-backend/pkg/db"
	"github.com/angelmondragon/ratewise-backend/pkg/logger"
	"github.com/angelmondragon/ratewise-backend/pkg/metrics"
	"github.com/angelmondragon/ratewise-backend/pkg/migrate"
	"github.com/angelmondragon/ratewise-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	var (
		cache       *ratematrix.Cache
		redisPinger controllers.Pinger
	)
	if cfg.Pricing.CacheEnabled {
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
		cache = ratematrix.NewCache(redisClient, cfg.Pricing.CacheTTL)
		redisPinger = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := pricing.NewEngine(pricing.Options{
		Guardrails: pricing.Guardrails{
			HighCommissionThreshold: cfg.Pricing.HighCommission(),
			MinRetentionRatio:       cfg.Pricing.MinRetention(),
		},
		TieBreak: cfg.Pricing.TieBreak(),
		Workers:  cfg.Pricing.Workers,
	})

	matrixService, err := ratematrix.NewService(
		catalog.NewRepository(dbClient.DB()),
		engine,
		cache,
		metrics.NewPricingMetrics(registry),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create price matrix service", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"cache_enabled": cfg.Pricing.CacheEnabled,
		"tie_break":     cfg.Pricing.TieBreak().String(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisPinger, registry, matrixService),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
