package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "https://api.opensanctions.org", cfg.Upstream.APIURL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2048, cfg.Cache.Size)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 50, cfg.Politics.AdjacentLimit)
	assert.Equal(t, time.Hour, cfg.Politics.ModelRefresh)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SITE_ADDR", ":9000")
	t.Setenv("API_URL", "http://api.test/")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("ADJACENT_LIMIT", "10")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "http://api.test", cfg.Upstream.APIURL, "trailing slash trimmed")
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 10, cfg.Politics.AdjacentLimit)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("duration", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "soon")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "CACHE_TTL")
	})

	t.Run("integer", func(t *testing.T) {
		t.Setenv("CACHE_SIZE", "lots")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "CACHE_SIZE")
	})
}
