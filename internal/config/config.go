package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvProduction is the APP_ENV value under which insecure fallbacks are
// disallowed.
const EnvProduction = "production"

// Config holds all application configuration.
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Logger      LoggerConfig
	Auth        AuthConfig
	Signing     SigningConfig
	Checkout    CheckoutConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds admin authentication configuration.
type AuthConfig struct {
	APIKey string
}

// SigningConfig holds order-signature configuration. In production a secret
// must be provided; outside production a missing secret falls back to an
// insecure default so local development still works.
type SigningConfig struct {
	Secret string
}

// insecureDefaultSecret is only ever used outside production.
const insecureDefaultSecret = "change_this_secret_in_production"

// CheckoutConfig holds the order-capture guardrails.
type CheckoutConfig struct {
	MaxQuantity        int // per-line abuse guardrail
	DedupWindowSeconds int // identical-cart dedup window
	RateLimitPerMinute int // checkout requests per client address
	RateLimitBurst     int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "morishcart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 2),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
		Signing: SigningConfig{
			Secret: getEnv("ORDER_SIGN_SECRET", ""),
		},
		Checkout: CheckoutConfig{
			MaxQuantity:        getEnvAsInt("CHECKOUT_MAX_QUANTITY", 100),
			DedupWindowSeconds: getEnvAsInt("CHECKOUT_DEDUP_WINDOW_SECONDS", 60),
			RateLimitPerMinute: getEnvAsInt("CHECKOUT_RATE_LIMIT_PER_MINUTE", 10),
			RateLimitBurst:     getEnvAsInt("CHECKOUT_RATE_LIMIT_BURST", 10),
		},
	}

	if cfg.Signing.Secret == "" && !cfg.IsProduction() {
		cfg.Signing.Secret = insecureDefaultSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("admin API key is required")
	}

	// Signing must fail closed in production.
	if c.Signing.Secret == "" {
		return fmt.Errorf("order signing secret is required in production")
	}

	if c.Checkout.MaxQuantity < 1 {
		return fmt.Errorf("checkout max quantity must be at least 1")
	}

	if c.Checkout.DedupWindowSeconds < 1 {
		return fmt.Errorf("checkout dedup window must be at least 1 second")
	}

	if c.Checkout.RateLimitPerMinute < 1 {
		return fmt.Errorf("checkout rate limit must be at least 1 per minute")
	}

	if c.Checkout.RateLimitBurst < 1 {
		return fmt.Errorf("checkout rate limit burst must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
