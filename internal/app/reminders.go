package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

// Dispatcher is what the scheduler drives; usecase.ReminderService satisfies it.
type Dispatcher interface {
	Dispatch(ctx domain.Context) (usecase.DispatchResult, error)
}

// ReminderScheduler publishes reminders for due tasks on a fixed interval.
type ReminderScheduler struct {
	dispatcher Dispatcher
	interval   time.Duration
}

// NewReminderScheduler returns nil when there is nothing to dispatch with.
func NewReminderScheduler(d Dispatcher, interval time.Duration) *ReminderScheduler {
	if d == nil {
		return nil
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReminderScheduler{dispatcher: d, interval: interval}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *ReminderScheduler) Run(ctx context.Context) {
	if s == nil {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("reminder scheduler stopping")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single traced sweep.
func (s *ReminderScheduler) RunOnce(ctx context.Context) usecase.DispatchResult {
	ctx, span := otel.Tracer("reminders.scheduler").Start(ctx, "ReminderScheduler.sweep")
	defer span.End()

	start := time.Now()
	res, err := s.dispatcher.Dispatch(ctx)
	span.SetAttributes(
		attribute.Int("reminders.published", res.Published),
		attribute.Int("reminders.failed", res.Failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		slog.Error("reminder sweep failed",
			slog.Int("published", res.Published),
			slog.Int("failed", res.Failed),
			slog.Any("error", err))
		return res
	}
	slog.Info("reminder sweep completed",
		slog.Int("published", res.Published),
		slog.Duration("took", time.Since(start)))
	return res
}
