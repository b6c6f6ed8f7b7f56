package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	AI      AIConfig
	Alerts  AlertsConfig
	Digest  DigestConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB. An empty URI selects the
// in-memory store, which is intended for local development only.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
}

// AlertsConfig holds classification thresholds.
type AlertsConfig struct {
	ExpiringWindowDays int
	LowStockThreshold  float64
}

// DigestConfig holds scheduler-related settings for the daily alert digest.
type DigestConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	expiringWindow, err := getenvInt("ALERT_EXPIRING_WINDOW_DAYS", 3)
	if err != nil {
		return nil, err
	}

	lowStock, err := getenvFloat("ALERT_LOW_STOCK_THRESHOLD", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "fridgeagent"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		Alerts: AlertsConfig{
			ExpiringWindowDays: expiringWindow,
			LowStockThreshold:  lowStock,
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 8 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Alerts.ExpiringWindowDays < 0 {
		return errors.New("ALERT_EXPIRING_WINDOW_DAYS must not be negative")
	}

	if c.Alerts.LowStockThreshold < 0 {
		return errors.New("ALERT_LOW_STOCK_THRESHOLD must not be negative")
	}

	if c.Digest.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}

	if c.Digest.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}
