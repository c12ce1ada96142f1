// Package config loads process configuration from the environment (and
// an optional .env file), the way the rest of this module's stack does
// it: manual os.LookupEnv reads with defaults, not a struct-tag binder.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	App  AppConfig
	DB   DBConfig
	JWT  JWTConfig
}

// AppConfig holds process-level configuration.
type AppConfig struct {
	Name  string
	Env   string
	Port  int
	Debug bool
}

// DBConfig holds database connection configuration.
type DBConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	DSN             string
	MaxConns         int32
	MigrationsDir   string
}

// JWTConfig holds bearer-token signing configuration.
type JWTConfig struct {
	Secret     string
	Expiration string
}

// Load loads configuration from environment variables, first loading
// path as a .env file if it exists (a missing file is not an error).
func Load(path string) (*Config, error) {
	godotenv.Load(path)

	cfg := &Config{
		App: AppConfig{
			Name:  getEnv("APP_NAME", "ledgerkeep"),
			Env:   getEnv("APP_ENV", "development"),
			Port:  getEnvAsIntWithValidation("APP_PORT", 8080, 1, 65535),
			Debug: getEnvAsBool("APP_DEBUG", true),
		},
		DB: DBConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvAsIntWithValidation("DB_PORT", 5432, 1, 65535),
			Name:          getEnv("DB_NAME", "ledgerkeep"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			SSLMode:       getEnv("DB_SSL_MODE", "disable"),
			MaxConns:      int32(getEnvAsIntWithValidation("DB_MAX_CONNS", 10, 1, 1000)),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "migrations"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "development_only_secret_do_not_use_in_prod"),
			Expiration: getEnv("JWT_EXPIRATION", "24h"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.DB.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name, cfg.DB.SSLMode,
	)

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "APP_NAME is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Sprintf("APP_PORT must be between 1 and 65535, got: %d", c.App.Port))
	}
	if c.DB.Host == "" {
		errs = append(errs, "DB_HOST is required")
	}
	if c.DB.Name == "" {
		errs = append(errs, "DB_NAME is required")
	}
	if c.DB.User == "" {
		errs = append(errs, "DB_USER is required")
	}

	switch c.App.Env {
	case "production":
		if c.JWT.Secret == "" || strings.Contains(c.JWT.Secret, "development_only") {
			errs = append(errs, "JWT_SECRET must be set to a secure value in production")
		}
		if len(c.JWT.Secret) < 32 {
			errs = append(errs, "JWT_SECRET should be at least 32 characters long in production")
		}
		if c.DB.Password == "" {
			errs = append(errs, "DB_PASSWORD should be set in production for security")
		}
	case "development", "dev", "test", "testing":
		// lenient
	default:
		errs = append(errs, fmt.Sprintf("unknown APP_ENV %q, expected production, development, or test", c.App.Env))
	}

	if c.JWT.Expiration == "" {
		errs = append(errs, "JWT_EXPIRATION is required")
	} else if _, err := time.ParseDuration(c.JWT.Expiration); err != nil {
		errs = append(errs, fmt.Sprintf("JWT_EXPIRATION must be a valid duration (e.g. '24h'), got: %s", c.JWT.Expiration))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

func getEnvAsIntWithValidation(key string, defaultValue, min, max int) int {
	valueStr, ok := os.LookupEnv(key)
	if !ok || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < min || value > max {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
