// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures everything the process needs to start.
type Server struct {
	Addr     string
	LogLevel string

	// DatabaseURL selects the PostgreSQL store; empty means in-memory.
	DatabaseURL string

	Redis   Redis
	Partner Partner
	Retry   Retry

	// QuoteCacheTTL bounds reuse of identical quotes within a day.
	QuoteCacheTTL time.Duration
}

// Redis carries the optional quote-cache connection settings. An empty URL
// disables the cache.
type Redis struct {
	URL string
}

// Partner carries the AFI ESCA endpoint and credentials. When Mock is true
// the deterministic in-process client is used instead; this is the default
// so the service runs without partner credentials.
type Partner struct {
	Mock      bool
	Endpoint  string
	Login     string
	Password  string
	PartnerID string
	Timeout   time.Duration
}

// Retry tunes the pricing call retry loop.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// FromEnv reads configuration from the environment, applying development
// defaults.
func FromEnv() Server {
	return Server{
		Addr:        envOr("CREDIRIS_ADDR", ":8080"),
		LogLevel:    envOr("CREDIRIS_LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: Redis{
			URL: os.Getenv("REDIS_URL"),
		},
		Partner: Partner{
			Mock:      envOr("AFI_ESCA_MOCK", "true") == "true",
			Endpoint:  os.Getenv("AFI_ESCA_ENDPOINT"),
			Login:     os.Getenv("AFI_ESCA_LOGIN"),
			Password:  os.Getenv("AFI_ESCA_PASSWORD"),
			PartnerID: os.Getenv("AFI_ESCA_PARTNER_ID"),
			Timeout:   envDuration("AFI_ESCA_TIMEOUT", 15*time.Second),
		},
		Retry: Retry{
			MaxAttempts: envInt("PRICING_RETRY_ATTEMPTS", 3),
			BaseDelay:   envDuration("PRICING_RETRY_BASE_DELAY", 200*time.Millisecond),
			MaxDelay:    envDuration("PRICING_RETRY_MAX_DELAY", 3*time.Second),
		},
		QuoteCacheTTL: envDuration("QUOTE_CACHE_TTL", 15*time.Minute),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
