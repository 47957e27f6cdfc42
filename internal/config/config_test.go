package config_test

import (
	"os"
	"testing"
	"time"

	"go-hris-leave/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("DB_USER", "hris")
		t.Setenv("DB_NAME", "hris")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
		assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
		assert.Equal(t, 20, cfg.RateLimitBurst)
		assert.Equal(t, "hris", cfg.Postgres().DBName)
		assert.False(t, cfg.IsProduction())
		assert.Error(t, cfg.RequireKafka())
	})

	t.Run("overrides parsed", func(t *testing.T) {
		t.Setenv("DB_USER", "hris")
		t.Setenv("DB_NAME", "hris")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_ENV", "production")
		t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
		t.Setenv("KAFKA_BROKER", "localhost:9092")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
		assert.NoError(t, cfg.RequireKafka())
	})

	t.Run("missing required", func(t *testing.T) {
		t.Setenv("DB_USER", "hris")
		assert.NoError(t, os.Unsetenv("DB_USER"))
		t.Setenv("DB_NAME", "hris")
		t.Setenv("JWT_SECRET", "secret")

		_, err := config.Load()

		assert.Error(t, err)
	})
}
