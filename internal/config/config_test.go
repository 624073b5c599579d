package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "exercise_events", cfg.Messaging.LocalTopic)
	assert.Equal(t, 1000.0, cfg.Sampling.MaxSeed)
	assert.Zero(t, cfg.Sampling.Seed)
	assert.False(t, cfg.App.IsProduction())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("SAMPLER_SEED", "42")
	t.Setenv("NATS_URL", "nats://nats:4222")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, StoreDriverMemory, cfg.Database.Driver)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, uint64(42), cfg.Sampling.Seed)
	assert.Equal(t, "nats://nats:4222", cfg.Messaging.NatsURL)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown store", key: "STORE_DRIVER", value: "firestore"},
		{name: "unknown cache", key: "CACHE_DRIVER", value: "memcached"},
		{name: "malformed ttl", key: "CACHE_TTL", value: "soon"},
		{name: "zero max seed", key: "MAX_SEED", value: "0"},
		{name: "negative seed", key: "SAMPLER_SEED", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
