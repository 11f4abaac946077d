package app

import (
	"os"
	"time"
)

// Config is assembled from the environment once at startup. Every field
// has a development default so a bare `docker compose up` works.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	OutboxPollInterval time.Duration
}

func LoadConfig() Config {
	return Config{
		Port: envOr("PORT", "8080"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "salary_system"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),

		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: envOr("KAFKA_BROKER", "localhost:9092"),

		OutboxPollInterval: durationOr("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
