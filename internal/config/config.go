package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the API server.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	TokenTTL    time.Duration
	LogLevel    string
	LogFile     string
	GinMode     string
}

// Default returns the settings used when no environment overrides exist.
func Default() Config {
	return Config{
		Port:        "8008",
		DatabaseDSN: "taskboard.db?_pragma=foreign_keys(1)",
		JWTSecret:   "development-insecure-secret-change-me",
		JWTIssuer:   "taskboard-api",
		JWTAudience: "taskboard-clients",
		TokenTTL:    24 * time.Hour,
		LogLevel:    "info",
		GinMode:     "release",
	}
}

// Load reads the optional env files and then the process environment.
// Missing env files are not an error.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseDSN = getEnv("DB_DSN", cfg.DatabaseDSN)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTAudience = getEnv("JWT_AUDIENCE", cfg.JWTAudience)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", raw)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
