package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	// TokenTTL bounds the signed token's embedded expiry; CookieTTL bounds
	// the cookie carrying it. They are separate knobs but default to the
	// same value so the two lifetimes stay aligned.
	TokenTTL   time.Duration
	CookieTTL  time.Duration
	BcryptCost int
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/userbase?parseTime=true&multiStatements=true"),
		JWTSecret:   getEnv("JWT_SECRET", devSecret),
		TokenTTL:    getDuration("TOKEN_TTL", 30*time.Minute),
		CookieTTL:   getDuration("COOKIE_TTL", 30*time.Minute),
		BcryptCost:  getInt("BCRYPT_COST", 10),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		slog.Warn("invalid duration, using fallback", "key", key, "value", v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer, using fallback", "key", key, "value", v)
	}
	return fallback
}
