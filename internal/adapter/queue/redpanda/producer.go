// Package redpanda publishes task reminders to a Redpanda/Kafka topic.
//
// Each reminder is one JSON record keyed by task id, so every reminder for a
// task lands on the same partition in issue order.
package redpanda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// DefaultReminderTopic is used when no topic is configured.
const DefaultReminderTopic = "task-reminders"

// recordProducer is the part of *kgo.Client the producer needs.
type recordProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// ReminderProducer implements domain.ReminderPublisher on top of franz-go.
type ReminderProducer struct {
	client     recordProducer
	topic      string
	newBackOff func() backoff.BackOff
}

var _ domain.ReminderPublisher = (*ReminderProducer)(nil)

// BackoffConfig tunes publish retries.
type BackoffConfig struct {
	MaxElapsedTime  time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (b BackoffConfig) factory() func() backoff.BackOff {
	return func() backoff.BackOff {
		expo := backoff.NewExponentialBackOff()
		if b.MaxElapsedTime > 0 {
			expo.MaxElapsedTime = b.MaxElapsedTime
		}
		if b.InitialInterval > 0 {
			expo.InitialInterval = b.InitialInterval
		}
		if b.MaxInterval > 0 {
			expo.MaxInterval = b.MaxInterval
		}
		return expo
	}
}

// NewReminderProducer connects to brokers, makes sure topic exists and
// returns a producer whose records are traced through kotel.
func NewReminderProducer(ctx context.Context, brokers []string, topic string, bo BackoffConfig) (*ReminderProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=redpanda.NewReminderProducer: no seed brokers provided")
	}
	if topic == "" {
		topic = DefaultReminderTopic
	}

	kotelService := kotel.NewKotel(
		kotel.WithTracer(kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))),
	)
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RequestRetries(5),
		kgo.WithHooks(kotelService.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=redpanda.NewReminderProducer: %w", err)
	}

	if err := createTopicIfNotExists(ctx, client, topic, 3, 1); err != nil {
		// Topic auto-creation or an operator may still provide it.
		slog.Warn("could not ensure reminder topic", slog.String("topic", topic), slog.Any("error", err))
	}
	slog.Info("reminder producer ready", slog.Any("brokers", brokers), slog.String("topic", topic))
	return newReminderProducer(client, topic, bo.factory()), nil
}

func newReminderProducer(client recordProducer, topic string, newBackOff func() backoff.BackOff) *ReminderProducer {
	return &ReminderProducer{client: client, topic: topic, newBackOff: newBackOff}
}

// PublishReminder sends one reminder, retrying transient broker errors with
// exponential backoff until the context or the retry budget runs out.
func (p *ReminderProducer) PublishReminder(ctx domain.Context, r domain.TaskReminder) error {
	rec, err := p.buildRecord(r)
	if err != nil {
		observability.ReminderFailed(string(r.Status))
		return fmt.Errorf("op=redpanda.PublishReminder: %w", err)
	}

	attempts := 0
	op := func() error {
		attempts++
		if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(err)
			}
			slog.Warn("reminder produce failed",
				slog.String("task_id", r.TaskID),
				slog.Int("attempt", attempts),
				slog.Any("error", err))
			return err
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(p.newBackOff(), ctx)); err != nil {
		observability.ReminderFailed(string(r.Status))
		return fmt.Errorf("op=redpanda.PublishReminder: %w", err)
	}

	observability.ReminderPublished(string(r.Status))
	slog.Debug("reminder published",
		slog.String("task_id", r.TaskID),
		slog.String("topic", p.topic),
		slog.Int("attempts", attempts))
	return nil
}

func (p *ReminderProducer) buildRecord(r domain.TaskReminder) (*kgo.Record, error) {
	if r.TaskID == "" {
		return nil, fmt.Errorf("%w: reminder without task id", domain.ErrInvalidArgument)
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return &kgo.Record{
		Topic: p.topic,
		Key:   []byte(r.TaskID),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "task_id", Value: []byte(r.TaskID)},
			{Key: "animal_id", Value: []byte(r.AnimalID)},
			{Key: "status", Value: []byte(r.Status)},
		},
	}, nil
}

// Close flushes nothing; ProduceSync already waited for every record.
func (p *ReminderProducer) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
