package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "task-reminders", cfg.ReminderTopic)
	assert.Equal(t, 7, cfg.ReminderHorizonDays)
	assert.InDelta(t, 50.0, cfg.DefaultMinScore, 0.0001)
	assert.False(t, cfg.KafkaEnabled())
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
}

func Test_Load_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("STORE_DRIVER", " SQLite ")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REMINDER_INTERVAL", "15m")
	t.Setenv("DEFAULT_MIN_SCORE", "65")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, 15*time.Minute, cfg.ReminderInterval)
	assert.InDelta(t, 65.0, cfg.DefaultMinScore, 0.0001)
	assert.True(t, cfg.IsProd())
}

func Test_Load_Errors(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "op=config.Load")
	})
	t.Run("min score out of range", func(t *testing.T) {
		t.Setenv("DEFAULT_MIN_SCORE", "120")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("REMINDER_INTERVAL", "soon")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestConfig_Level(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{AppEnv: "dev"}.Level())
	assert.Equal(t, slog.LevelInfo, Config{AppEnv: "prod"}.Level())
	assert.Equal(t, slog.LevelWarn, Config{AppEnv: "dev", LogLevel: "WARN"}.Level())
	assert.Equal(t, slog.LevelError, Config{LogLevel: "error"}.Level())
}

func TestConfig_GetReminderBackoffConfig(t *testing.T) {
	cfg := Config{
		AppEnv:                         "prod",
		ReminderBackoffMaxElapsedTime:  time.Minute,
		ReminderBackoffInitialInterval: time.Second,
		ReminderBackoffMaxInterval:     10 * time.Second,
	}
	maxElapsed, initial, maxInterval := cfg.GetReminderBackoffConfig()
	assert.Equal(t, time.Minute, maxElapsed)
	assert.Equal(t, time.Second, initial)
	assert.Equal(t, 10*time.Second, maxInterval)

	cfg.AppEnv = "test"
	maxElapsed, _, _ = cfg.GetReminderBackoffConfig()
	assert.Equal(t, 2*time.Second, maxElapsed)
}
