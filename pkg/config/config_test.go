package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LISTEN_ADDRESS", "PORT", "CATALOG_URL", "CATALOG_TIMEOUT", "ITEMS_PER_PAGE", "TOTAL_ITEMS", "PAGE_RADIUS", "REDIS_URL", "RABBIT_URL", "RABBIT_HOST", "CACHE_TTL", "CATALOG_USER_AGENT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.Url)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Empty(t, cfg.Catalog.UserAgent)
	assert.Equal(t, 12, cfg.Paging.ItemsPerPage)
	assert.Equal(t, 100, cfg.Paging.TotalItems)
	assert.Equal(t, 2, cfg.Paging.Radius)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Empty(t, cfg.Cache.RedisUrl)
	assert.False(t, cfg.EnableProfiling)
}

func TestLoadFromEnvAndFlags(t *testing.T) {
	t.Setenv("LISTEN_ADDRESS", "")
	t.Setenv("PORT", "9000")
	t.Setenv("TOTAL_ITEMS", "194")
	t.Setenv("CATALOG_TIMEOUT", "3")
	t.Setenv("ITEMS_PER_PAGE", "abc")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("CATALOG_USER_AGENT", " shop-frontend/2 ")

	cfg, err := Load([]string{"-profiling"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddress)
	assert.Equal(t, 194, cfg.Paging.TotalItems)
	assert.Equal(t, 12, cfg.Paging.ItemsPerPage)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisUrl)
	assert.Equal(t, "shop-frontend/2", cfg.Catalog.UserAgent)
	assert.True(t, cfg.EnableProfiling)

	cfg, err = Load([]string{"-listen", "127.0.0.1:7000"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.ListenAddress)
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	_, err := Load([]string{"-nope"})
	assert.Error(t, err)
}
