package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HIRA_SERVICE_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.HIRA.ServiceKey)
	assert.Equal(t, 100, cfg.HIRA.PageSize)
	assert.Equal(t, 10*time.Second, cfg.HIRA.Timeout)
	assert.Equal(t, 8, cfg.HIRA.DetailConcurrency)
	assert.Equal(t, 5, cfg.Recents.Cap)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HIRA_SERVICE_KEY", "k")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("HIRA_PAGE_SIZE", "250")
	t.Setenv("HIRA_TIMEOUT", "3s")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 250, cfg.HIRA.PageSize)
	assert.Equal(t, 3*time.Second, cfg.HIRA.Timeout)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_MissingServiceKey(t *testing.T) {
	t.Setenv("HIRA_SERVICE_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("HIRA_SERVICE_KEY", "k")
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("HIRA_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.HIRA.Timeout)
}
