package ratelimiter

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLuaLimiter(t *testing.T) (*RedisLuaLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLuaLimiter(rdb, nil), mr
}

func TestAllow_NilLimiter_FailOpen(t *testing.T) {
	var limiter *RedisLuaLimiter
	allowed, retryAfter, err := limiter.Allow(context.Background(), "match", "1.2.3.4", 1)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)
	assert.Nil(t, NewRedisLuaLimiter(nil, nil))
}

func TestAllow_NoBucketConfig_FailOpen(t *testing.T) {
	limiter, _ := newTestRedisLuaLimiter(t)
	allowed, retryAfter, err := limiter.Allow(context.Background(), "unknown-bucket", "x", 1)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)
}

func TestAllow_RespectsCapacityAndRetryAfter(t *testing.T) {
	ctx := context.Background()
	limiter, _ := newTestRedisLuaLimiter(t)
	limiter.SetBucketConfig("match", BucketConfig{Capacity: 3, RefillRate: 0.5})

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "match", "client-a", 1)
		require.NoError(t, err)
		require.True(t, allowed, "request %d should pass", i)
	}
	allowed, retryAfter, err := limiter.Allow(ctx, "match", "client-a", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, 2*time.Second)

	// subjects have independent buckets
	allowed, _, err = limiter.Allow(ctx, "match", "client-b", 1)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllow_RedisDown_FailOpenWithError(t *testing.T) {
	limiter, mr := newTestRedisLuaLimiter(t)
	limiter.SetBucketConfig("match", NewBucketConfigFromPerMinute(60))
	mr.Close()

	allowed, _, err := limiter.Allow(context.Background(), "match", "client", 1)
	assert.Error(t, err)
	assert.True(t, allowed)
}

func TestNewBucketConfigFromPerMinute(t *testing.T) {
	assert.Equal(t, BucketConfig{}, NewBucketConfigFromPerMinute(0))
	cfg := NewBucketConfigFromPerMinute(120)
	assert.Equal(t, int64(120), cfg.Capacity)
	assert.InDelta(t, 2.0, cfg.RefillRate, 1e-9)
}
