package app

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestBuildReadinessChecks_NilDependencies(t *testing.T) {
	db, red, kafka := BuildReadinessChecks(nil, nil, nil)
	assert.Nil(t, db)
	assert.Nil(t, red)
	assert.Nil(t, kafka)
	assert.Nil(t, WrapRedis(nil))
}

func TestBuildReadinessChecks_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	_, red, _ := BuildReadinessChecks(nil, WrapRedis(client), nil)
	require.NotNil(t, red)
	require.NoError(t, red(context.Background()))

	mr.Close()
	assert.Error(t, red(context.Background()))
}

func TestBuildReadinessChecks_DBAndKafka(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("refused") })

	db, _, kafka := BuildReadinessChecks(ok, nil, down)
	require.NoError(t, db(context.Background()))
	err := kafka(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka ping")
}
