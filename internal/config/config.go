package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded from environment variables.
// godotenv is loaded in main before this is read.
type Config struct {
	// HTTP
	Port string

	// Logging
	LogLevel string
	LogFile  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Trending
	RolloverInterval time.Duration // how often window counters are decayed and rescored
	TrendingCacheTTL time.Duration // redis cache TTL for trending responses
}

// Load reads configuration from the environment with sane defaults
func Load() *Config {
	return &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:          getEnvOrDefault("LOG_FILE", "server.log"),
		RedisHost:        getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:        getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RolloverInterval: getEnvDuration("ROLLOVER_INTERVAL", time.Minute),
		TrendingCacheTTL: getEnvDuration("TRENDING_CACHE_TTL", 30*time.Second),
	}
}

// getEnvOrDefault returns environment variable or default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration env var ("90s", "5m"), falling back to
// seconds if the value is a bare integer
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
