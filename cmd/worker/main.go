// Package main provides the worker application entry point.
// The worker sweeps pending care tasks and publishes reminders for the ones
// that are due soon to the Redpanda reminder topic.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/queue/redpanda"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/app"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// The worker exposes its own /metrics so reminder counters can be scraped.
	observability.InitMetrics()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":9090", mux); err != nil {
			slog.Error("worker metrics server error", slog.Any("error", err))
		}
	}()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	if !cfg.KafkaEnabled() {
		slog.Error("KAFKA_BROKERS is required for the reminder worker")
		os.Exit(1)
	}

	slog.Info("starting worker", slog.String("env", cfg.AppEnv), slog.String("topic", cfg.ReminderTopic))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		slog.Error("store open failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer stores.Close()

	if cfg.SeedFile != "" && stores.Driver == config.StoreMemory {
		// A memory store starts empty in every process; seed it so the
		// worker sees the same tasks as the API.
		if data, err := app.LoadSeed(cfg.SeedFile); err != nil {
			slog.Warn("seed load failed", slog.Any("error", err))
		} else if _, err := app.ApplySeed(ctx, stores, data); err != nil {
			slog.Warn("seed apply failed", slog.Any("error", err))
		}
	}

	maxElapsed, initial, maxInterval := cfg.GetReminderBackoffConfig()
	producer, err := redpanda.NewReminderProducer(ctx, cfg.KafkaBrokers, cfg.ReminderTopic, redpanda.BackoffConfig{
		MaxElapsedTime:  maxElapsed,
		InitialInterval: initial,
		MaxInterval:     maxInterval,
	})
	if err != nil {
		slog.Error("redpanda producer connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			slog.Error("failed to close reminder producer", slog.Any("error", err))
		}
	}()

	taskSvc := usecase.NewTaskService(stores.Tasks, stores.Animals, stores.Adopters)
	reminderSvc := usecase.NewReminderService(taskSvc, producer, cfg.ReminderHorizonDays)
	scheduler := app.NewReminderScheduler(reminderSvc, cfg.ReminderInterval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()
	}()

	slog.Info("reminder scheduler started",
		slog.Duration("interval", cfg.ReminderInterval),
		slog.Int("horizon_days", cfg.ReminderHorizonDays))
	scheduler.Run(ctx)
	slog.Info("worker stopped")
}
