package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr          string
	BaseURL       string
	JWTSigningKey string

	// PostgresURL empty means in-memory stores.
	PostgresURL string

	Redis RedisConfig

	// KafkaBrokers empty means notifications go to the log only.
	KafkaBrokers []string
	KafkaTopic   string

	DashboardPollInterval time.Duration
}

// RedisConfig configures the draft cache connection. An empty URL disables
// Redis and falls back to the in-process cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:                  envOr("ONBOARD_ADDR", ":8080"),
		BaseURL:               envOr("ONBOARD_BASE_URL", "http://localhost:8080"),
		PostgresURL:           os.Getenv("ONBOARD_POSTGRES_URL"),
		KafkaTopic:            envOr("ONBOARD_KAFKA_TOPIC", "onboarding-events"),
		DashboardPollInterval: envDurationOr("ONBOARD_DASHBOARD_POLL_INTERVAL", 15*time.Second),
		Redis: RedisConfig{
			URL:          os.Getenv("ONBOARD_REDIS_URL"),
			PoolSize:     envIntOr("ONBOARD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("ONBOARD_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDurationOr("ONBOARD_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("ONBOARD_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("ONBOARD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}

	if brokers := os.Getenv("ONBOARD_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	cfg.JWTSigningKey = os.Getenv("ONBOARD_JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
