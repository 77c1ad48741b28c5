package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Webhook WebhookConfig
}

// ServerConfig holds serving-related configuration
type ServerConfig struct {
	HTTPAddr string
	GRPCAddr string
}

// StoreConfig holds record-store configuration. Backend selects the driver:
// "postgres" (production) or "sqlite" (local / batch runs).
type StoreConfig struct {
	Backend           string
	DSN               string
	SQLitePath        string
	DefaultCollection string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	DialTimeout       time.Duration
}

// WebhookConfig holds frontend-notification configuration. URL empty
// disables notification.
type WebhookConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
			GRPCAddr: getEnv("GRPC_ADDR", ":9090"),
		},
		Store: StoreConfig{
			Backend:           getEnv("STORE_BACKEND", "sqlite"),
			DSN:               getEnv("DB_URL", ""),
			SQLitePath:        getEnv("SQLITE_PATH", "./records.db"),
			DefaultCollection: getEnv("DEFAULT_COLLECTION", "user"),
			MaxConns:          getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:          getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:       getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Webhook: WebhookConfig{
			URL:     getEnv("WEBHOOK_URL", ""),
			Secret:  getEnv("WEBHOOK_SECRET", ""),
			Timeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "postgres":
		if c.Store.DSN == "" {
			return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres backend", ErrInvalidInput)
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return NewAppError("CONFIG_ERROR", "SQLITE_PATH is required for the sqlite backend", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "STORE_BACKEND must be postgres or sqlite", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Webhook.URL != "" && c.Webhook.Secret == "" {
		return NewAppError("CONFIG_ERROR", "WEBHOOK_SECRET is required when WEBHOOK_URL is set", ErrInvalidInput)
	}
	return nil
}
