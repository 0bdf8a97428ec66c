package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for match history
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string

	// Resource paths
	DataDir      string
	DatabasePath string

	// Match history
	StorageType     string
	ResultRetention time.Duration

	// Elasticsearch, optional
	ElasticsearchURL         string
	ElasticsearchUsername    string
	ElasticsearchPassword    string
	ElasticsearchIndexPrefix string

	// Gameplay
	OpponentDelay time.Duration
	RandomSeed    int64
	IdleTimeout   time.Duration
	SweepInterval time.Duration

	// Environment
	Environment string // "development" or "production"
	LogLevel    string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))
	cfg := &Config{
		Token:                    os.Getenv("DISCORD_TOKEN"),
		AppID:                    os.Getenv("APP_ID"),
		GuildID:                  os.Getenv("GUILD_ID"),
		Environment:              getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:                 getEnvWithDefault("LOG_LEVEL", "info"),
		DataDir:                  dataDir,
		DatabasePath:             getEnvWithDefault("DATABASE_PATH", filepath.Join(dataDir, "crazyeights.db")),
		StorageType:              getEnvWithDefault("STORAGE_TYPE", StorageMemory),
		ElasticsearchURL:         os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUsername:    os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword:    os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndexPrefix: getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "crazyeights"),
	}

	if cfg.OpponentDelay, err = getDurationWithDefault("OPPONENT_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = getDurationWithDefault("IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDurationWithDefault("SWEEP_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ResultRetention, err = getDurationWithDefault("RESULT_RETENTION", 90*24*time.Hour); err != nil {
		return nil, err
	}
	if seed := os.Getenv("RANDOM_SEED"); seed != "" {
		if cfg.RandomSeed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED %q: %w", seed, err)
		}
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	if c.StorageType != StorageMemory && c.StorageType != StorageSQLite {
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageSQLite, c.StorageType)
	}
	if c.OpponentDelay < 0 {
		return fmt.Errorf("OPPONENT_DELAY must not be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ElasticsearchEnabled returns true when match results should also be indexed
func (c *Config) ElasticsearchEnabled() bool {
	return c.ElasticsearchURL != ""
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationWithDefault parses a Go duration from the environment
func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
