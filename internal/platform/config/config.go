// Package config loads process-wide configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the CaboAi backend.
// It is built once at startup and injected into constructors; packages
// never read the environment themselves.
type Config struct {
	Environment string
	Port        string

	DatabaseURL   string
	RunMigrations bool

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret string
	JWTTTL    time.Duration

	AIServiceURL     string
	AIServiceTimeout time.Duration
	GeminiModel      string

	DailyMessageLimit int64

	CORSOrigins []string
}

// Load reads configuration from environment variables and applies
// defaults suitable for local development.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("AI_SERVICE_TIMEOUT", "30s")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("DAILY_MESSAGE_LIMIT", 100)
	v.SetDefault("CORS_ORIGINS", []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
	})

	cfg := &Config{
		Environment:       v.GetString("ENVIRONMENT"),
		Port:              v.GetString("PORT"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		RunMigrations:     v.GetBool("RUN_MIGRATIONS"),
		RedisHost:         v.GetString("REDIS_HOST"),
		RedisPort:         v.GetString("REDIS_PORT"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTTTL:            v.GetDuration("JWT_TTL"),
		AIServiceURL:      v.GetString("AI_SERVICE_URL"),
		AIServiceTimeout:  v.GetDuration("AI_SERVICE_TIMEOUT"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		DailyMessageLimit: v.GetInt64("DAILY_MESSAGE_LIMIT"),
		CORSOrigins:       v.GetStringSlice("CORS_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %v", cfg.JWTTTL)
	}

	return cfg, nil
}
