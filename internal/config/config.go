package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv          string
	DBPath          string
	DBDriver        string
	RedisAddr       string
	HTTPPort        int
	Timezone        string
	AnthropicAPIKey string
	OracleModel     string
	CacheTTL        time.Duration
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	portStr := getEnv("HTTP_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 8080
	}

	ttlStr := getEnv("CACHE_TTL_MINUTES", "10")
	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 10
	}

	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		DBPath:          getEnv("DB_PATH", "./data/feedback.db"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:        port,
		Timezone:        getEnv("TIMEZONE", "UTC"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OracleModel:     getEnv("ORACLE_MODEL", ""),
		CacheTTL:        time.Duration(ttlMinutes) * time.Minute,
	}
}

// Location resolves the configured reporting timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
