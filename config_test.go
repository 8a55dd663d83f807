package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20, cfg.FeedCapacity)
	assert.Equal(t, 5, cfg.EventIntervalSeconds)
	assert.Equal(t, 30, cfg.RefreshIntervalSeconds)
	assert.Equal(t, 399, cfg.ProviderLeagueID)
	assert.Empty(t, cfg.APIFootballKey)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PULSE_ADDR", ":9090")
	t.Setenv("PULSE_LOG_LEVEL", "debug")
	t.Setenv("PULSE_FEED_CAPACITY", "50")
	t.Setenv("API_FOOTBALL_KEY", "secret")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.FeedCapacity)
	assert.Equal(t, "secret", cfg.APIFootballKey)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("PULSE_FEED_CAPACITY", "0")

	_, err := loadConfig()
	assert.Error(t, err)
}
