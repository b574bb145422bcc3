package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBPath      string
	LogLevel    string
	LogFile     string
	SessionTTL  time.Duration
	LoginPerMin int
}

// Load reads an optional .env file, then the HABITUAL_* environment variables.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	ttl, err := time.ParseDuration(getEnv("HABITUAL_SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("parse HABITUAL_SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("HABITUAL_SESSION_TTL must be positive, got %s", ttl)
	}

	perMin, err := strconv.Atoi(getEnv("HABITUAL_LOGIN_RATE", "10"))
	if err != nil {
		return nil, fmt.Errorf("parse HABITUAL_LOGIN_RATE: %w", err)
	}
	if perMin < 1 {
		return nil, fmt.Errorf("HABITUAL_LOGIN_RATE must be at least 1, got %d", perMin)
	}

	return &Config{
		Port:        getEnv("HABITUAL_PORT", "8080"),
		DBPath:      getEnv("HABITUAL_DB_PATH", "habitual.db"),
		LogLevel:    getEnv("HABITUAL_LOG_LEVEL", "info"),
		LogFile:     getEnv("HABITUAL_LOG_FILE", ""),
		SessionTTL:  ttl,
		LoginPerMin: perMin,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
