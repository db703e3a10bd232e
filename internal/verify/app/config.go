package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile   string        // Optional: path to SQLite database file (default: ./verify.db)
	TokenTTL       time.Duration // Optional: verification token lifetime (default: 1h)
	URLTemplate    string        // Required: verification link template with {token} and {principal}
	CallbackSecret string        // Optional: shared secret required on the completion callback

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseFile: getEnvOrDefault("VERIFY_DATABASE_FILE", "verify.db"),
		TokenTTL:     getEnvDurationOrDefault("VERIFY_TOKEN_TTL", time.Hour),
		URLTemplate: getEnvOrDefault(
			"VERIFY_URL_TEMPLATE",
			"http://localhost:8080/verify?token={token}",
		),
		CallbackSecret: os.Getenv(
			"VERIFY_CALLBACK_SECRET",
		), // Optional: if unset, the completion callback is unguarded

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
