package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment with a
// .env file as fallback for local development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	JWT JWTConfig

	KafkaBrokers         []string
	AttendanceEventTopic string

	QRMediaDir string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// LoadConfig reads configuration from the environment. Only DATABASE_URL and
// JWT_SECRET are mandatory; Redis and Kafka are optional integrations.
func LoadConfig() (*Config, error) {
	// Ignore error: a missing .env file is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		LogLevel:             parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		RedisURL:             os.Getenv("REDIS_URL"),
		AttendanceEventTopic: getEnv("ATTENDANCE_EVENTS_TOPIC", "attendance.events"),
		QRMediaDir:           getEnv("QR_MEDIA_DIR", "media/qrcodes"),
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getEnv("JWT_ISSUER", "qr-attendance"),
			TTL:    parseDuration(getEnv("JWT_TTL", "12h")),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}
