package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "CLIENT_ORIGIN", "STORE_DRIVER", "SQLITE_PATH",
	"DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TTL",
	"RANDOM_ORG_ENABLED", "RANDOM_ORG_URL", "RANDOM_ORG_TIMEOUT", "DAILY_SALT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "memory", c.Store.Driver)
	assert.Equal(t, "./data/bnc.db", c.Store.SQLitePath)
	assert.True(t, c.RandomOrgEnabled)
	assert.Equal(t, 3*time.Second, c.RandomOrgTimeout)
	assert.Zero(t, c.Store.RedisTTL)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TTL", "24h")
	t.Setenv("RANDOM_ORG_ENABLED", "false")
	t.Setenv("RANDOM_ORG_TIMEOUT", "500ms")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "redis", c.Store.Driver)
	assert.Equal(t, 2, c.Store.RedisDB)
	assert.Equal(t, 24*time.Hour, c.Store.RedisTTL)
	assert.False(t, c.RandomOrgEnabled)
	assert.Equal(t, 500*time.Millisecond, c.RandomOrgTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "two")
	t.Setenv("RANDOM_ORG_TIMEOUT", "soon")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "RANDOM_ORG_TIMEOUT")
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
