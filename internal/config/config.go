package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port     string `envconfig:"PORT" default:"3000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Database configuration
	DBType            string `envconfig:"DB_TYPE" default:"sqlite"` // mysql, postgres, sqlite, sqlite-pure, sqlserver
	DBHost            string `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string `envconfig:"DB_PORT" default:"3306"`
	DBDatabase        string `envconfig:"DB_DATABASE" default:"glucodb.sqlite"`
	DBUser            string `envconfig:"DB_USER"`
	DBPassword        string `envconfig:"DB_PASSWORD"`
	DBConnectionLimit int    `envconfig:"DB_CONNECTION_LIMIT" default:"5"`
	DBLogLevel        string `envconfig:"DB_LOG_LEVEL" default:"warn"`

	// Authentication: "jwt" verifies a Bearer token, "authorizer" validates a session cookie
	AuthMode      string `envconfig:"AUTH_MODE" default:"jwt"`
	JWTSecret     string `envconfig:"JWT_SECRET"`
	AuthzURL      string `envconfig:"AUTHZ_URL"`
	AuthzClientID string `envconfig:"AUTHZ_CLIENT_ID"`

	// Reference data and model bootstrap
	SeedData     bool   `envconfig:"SEED_DATA" default:"true"`
	TrainingData string `envconfig:"TRAINING_DATA"` // optional CSV path; embedded sample when empty
}

// Load loads configuration from environment variables, after reading
// ENV_FILE (or ./.env when present) into the environment.
func Load() (*Config, error) {
	if err := loadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	c.DBType = strings.ToLower(strings.TrimSpace(c.DBType))

	if c.DBDatabase == "" {
		return errors.New("DB_DATABASE is required")
	}
	if c.DBType != "sqlite" && c.DBType != "sqlite-pure" && c.DBUser == "" {
		return errors.New("DB_USER is required")
	}
	if c.DBConnectionLimit < 1 {
		c.DBConnectionLimit = 1
	}

	switch c.AuthMode {
	case "jwt":
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case "authorizer":
		if c.AuthzURL == "" {
			return errors.New("AUTHZ_URL is required when AUTH_MODE=authorizer")
		}
		if c.AuthzClientID == "" {
			return errors.New("AUTHZ_CLIENT_ID is required when AUTH_MODE=authorizer")
		}
	default:
		return errors.Errorf("unsupported AUTH_MODE: %s", c.AuthMode)
	}

	return nil
}

// IsSQLite reports whether the configured store is a SQLite file
func (c *Config) IsSQLite() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite-pure"
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load env file %s", path)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		// Values already in the environment win over .env
		if err := godotenv.Load(); err != nil {
			return errors.Wrap(err, "failed to load .env")
		}
	}
	return nil
}
