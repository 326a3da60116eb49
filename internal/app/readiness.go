package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *pgxpool.Pool, the sqlite DB and *kgo.Client.
type Pinger interface{ Ping(ctx context.Context) error }

// RedisPingResult is the minimal return type of a Redis client's Ping.
type RedisPingResult interface{ Err() error }

// RedisClient is the minimal interface for a Redis client needed for readiness.
type RedisClient interface {
	Ping(ctx context.Context) RedisPingResult
}

type redisAdapter struct{ c *redis.Client }

func (a redisAdapter) Ping(ctx context.Context) RedisPingResult { return a.c.Ping(ctx) }

// WrapRedis adapts a go-redis client for readiness checks. A nil client stays nil.
func WrapRedis(c *redis.Client) RedisClient {
	if c == nil {
		return nil
	}
	return redisAdapter{c: c}
}

// BuildReadinessChecks returns the db, redis and kafka probes. A check is nil
// when its dependency is not configured, which keeps it off /readyz.
func BuildReadinessChecks(db Pinger, rdb RedisClient, kafka Pinger) (
	dbCheck func(ctx context.Context) error,
	redisCheck func(ctx context.Context) error,
	kafkaCheck func(ctx context.Context) error,
) {
	if db != nil {
		dbCheck = func(ctx context.Context) error {
			if err := db.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}
			return nil
		}
	}
	if rdb != nil {
		redisCheck = func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping: %w", err)
			}
			return nil
		}
	}
	if kafka != nil {
		kafkaCheck = func(ctx context.Context) error {
			if err := kafka.Ping(ctx); err != nil {
				return fmt.Errorf("kafka ping: %w", err)
			}
			return nil
		}
	}
	return dbCheck, redisCheck, kafkaCheck
}
