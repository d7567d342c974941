package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "ROLLOVER_INTERVAL", "TRENDING_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.RolloverInterval)
	assert.Equal(t, 30*time.Second, cfg.TrendingCacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ROLLOVER_INTERVAL", "5m")
	t.Setenv("TRENDING_CACHE_TTL", "45") // bare integer means seconds

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.RolloverInterval)
	assert.Equal(t, 45*time.Second, cfg.TrendingCacheTTL)
}

func TestGetEnvDurationRejectsGarbage(t *testing.T) {
	t.Setenv("ROLLOVER_INTERVAL", "soon")

	cfg := Load()
	assert.Equal(t, time.Minute, cfg.RolloverInterval)
}
