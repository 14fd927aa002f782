package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the server needs from the environment. Values are
// read once at startup; defaults target local development against a reservation
// API on port 8080.
type Config struct {
	Server     ServerConfig
	Upstream   UpstreamConfig
	Logging    LoggingConfig
	Security   SecurityConfig
	Kafka      KafkaConfig
	Validation ValidationConfig
}

type ServerConfig struct {
	Port string
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
	Dir    string
}

type SecurityConfig struct {
	JWTSecret string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	// ConsumeTopics lists broker topics mirrored into the local feed. Leave
	// empty on single-instance deployments.
	ConsumeTopics []string
}

type ValidationConfig struct {
	RequireEmailFormat bool
	MaxPartySize       int
	StrictStatusFlow   bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("RESERVATION_API_URL", "http://localhost:8080"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			Dir:    getEnv("LOG_DIR", ""),
		},
		Security: SecurityConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKER", "")),
			Topic:         getEnv("KAFKA_TOPIC", "reservations"),
			GroupID:       getEnv("KAFKA_GROUP_ID", "tavola-feed"),
			ConsumeTopics: splitList(getEnv("KAFKA_CONSUME_TOPICS", "")),
		},
	}

	timeout, err := getDuration("RESERVATION_API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Upstream.Timeout = timeout

	maxParty, err := getInt("MAX_PARTY_SIZE", 0)
	if err != nil {
		return nil, err
	}
	cfg.Validation.MaxPartySize = maxParty

	requireEmail, err := getBool("REQUIRE_EMAIL_FORMAT", false)
	if err != nil {
		return nil, err
	}
	cfg.Validation.RequireEmailFormat = requireEmail

	strict, err := getBool("STRICT_STATUS_FLOW", false)
	if err != nil {
		return nil, err
	}
	cfg.Validation.StrictStatusFlow = strict

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, raw)
	}
	return value, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration (e.g. 10s), got %q", key, raw)
	}
	return value, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
