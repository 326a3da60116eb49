// Command server starts the pet adoption matcher HTTP API.
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
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/kgo"

	httpserver "github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/httpserver"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/app"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/service/ratelimiter"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register Prometheus metrics once per process so /metrics exposes
	// HTTP, matching and rate-limit instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Infra: profile store
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		slog.Error("store open failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer stores.Close()

	if cfg.SeedFile != "" {
		data, err := app.LoadSeed(cfg.SeedFile)
		if err != nil {
			slog.Error("seed load failed", slog.String("path", cfg.SeedFile), slog.Any("error", err))
			os.Exit(1)
		}
		res, err := app.ApplySeed(ctx, stores, data)
		if err != nil {
			slog.Error("seed apply failed", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("seed applied", slog.Int("inserted", res.Inserted), slog.Int("skipped", res.Skipped))
	}

	// Start cleanup service for data retention
	if stores.Pool != nil && cfg.DataRetentionDays > 0 {
		cleanupSvc := postgres.NewCleanupService(stores.Pool, cfg.DataRetentionDays)
		go cleanupSvc.RunPeriodic(ctx, cfg.CleanupInterval)
		slog.Info("cleanup service started", slog.Int("retention_days", cfg.DataRetentionDays), slog.Duration("interval", cfg.CleanupInterval))
	}

	// Redis backs the per-client match limiter; without it the limiter is off.
	var (
		limiter ratelimiter.Limiter
		rdbPing app.RedisClient
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		limiter = ratelimiter.NewRedisLuaLimiter(rdb, map[string]ratelimiter.BucketConfig{
			httpserver.BucketMatch: ratelimiter.NewBucketConfigFromPerMinute(cfg.MatchRateLimitPerMin),
		})
		rdbPing = app.WrapRedis(rdb)
	}

	// The API does not publish; a bare client is enough to report broker reachability.
	var kafkaPing app.Pinger
	if cfg.KafkaEnabled() {
		kcl, err := kgo.NewClient(kgo.SeedBrokers(cfg.KafkaBrokers...))
		if err != nil {
			slog.Warn("kafka client init failed, readiness will skip brokers", slog.Any("error", err))
		} else {
			defer kcl.Close()
			kafkaPing = kcl
		}
	}

	// Usecases
	matchSvc := usecase.NewMatchService(stores.Animals, stores.Adopters)
	catalogSvc := usecase.NewCatalogService(stores.Animals, stores.Adopters, stores.Tasks)
	taskSvc := usecase.NewTaskService(stores.Tasks, stores.Animals, stores.Adopters)

	dbCheck, redisCheck, kafkaCheck := app.BuildReadinessChecks(stores.DB, rdbPing, kafkaPing)

	srv := httpserver.NewServer(cfg, matchSvc, catalogSvc, taskSvc, limiter, dbCheck, redisCheck, kafkaCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port), slog.String("store", stores.Driver))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
