package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name: "Success with minimal required config",
			envVars: map[string]string{
				"ADMIN_API_KEY": "test-api-key",
			},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"SERVER_HOST":                    "localhost",
				"SERVER_PORT":                    "9090",
				"DB_HOST":                        "db.example.com",
				"DB_PORT":                        "5433",
				"DB_USER":                        "shop",
				"DB_PASSWORD":                    "secret",
				"DB_NAME":                        "shopdb",
				"DB_MAX_CONNECTIONS":             "20",
				"DB_MIN_CONNECTIONS":             "4",
				"LOG_LEVEL":                      "debug",
				"LOG_FORMAT":                     "console",
				"ADMIN_API_KEY":                  "test-api-key",
				"ORDER_SIGN_SECRET":              "super-secret",
				"CHECKOUT_MAX_QUANTITY":          "50",
				"CHECKOUT_DEDUP_WINDOW_SECONDS":  "30",
				"CHECKOUT_RATE_LIMIT_PER_MINUTE": "5",
			},
			expectError: false,
		},
		{
			name:        "Missing admin API key",
			envVars:     map[string]string{},
			expectError: true,
			errorMsg:    "admin API key is required",
		},
		{
			name: "Production without signing secret fails closed",
			envVars: map[string]string{
				"APP_ENV":       "production",
				"ADMIN_API_KEY": "test-api-key",
			},
			expectError: true,
			errorMsg:    "order signing secret is required in production",
		},
		{
			name: "Production with signing secret",
			envVars: map[string]string{
				"APP_ENV":           "production",
				"ADMIN_API_KEY":     "test-api-key",
				"ORDER_SIGN_SECRET": "prod-secret",
			},
			expectError: false,
		},
		{
			name: "Invalid server port",
			envVars: map[string]string{
				"ADMIN_API_KEY": "test-api-key",
				"SERVER_PORT":   "99999",
			},
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"ADMIN_API_KEY": "test-api-key",
				"LOG_LEVEL":     "verbose",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Min connections exceed max",
			envVars: map[string]string{
				"ADMIN_API_KEY":      "test-api-key",
				"DB_MAX_CONNECTIONS": "2",
				"DB_MIN_CONNECTIONS": "5",
			},
			expectError: true,
			errorMsg:    "min connections cannot exceed max",
		},
		{
			name: "Zero dedup window",
			envVars: map[string]string{
				"ADMIN_API_KEY":                 "test-api-key",
				"CHECKOUT_DEDUP_WINDOW_SECONDS": "0",
			},
			expectError: true,
			errorMsg:    "dedup window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "test-api-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.Equal(t, 100, cfg.Checkout.MaxQuantity)
	assert.Equal(t, 60, cfg.Checkout.DedupWindowSeconds)
	assert.Equal(t, 10, cfg.Checkout.RateLimitPerMinute)
	// Development mode falls back to the insecure default secret.
	assert.NotEmpty(t, cfg.Signing.Secret)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "shop",
		Password: "pw",
		Database: "morishcart",
	}

	assert.Equal(t, "postgres://shop:pw@localhost:5432/morishcart?sslmode=disable", cfg.ConnectionString())
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 9000}
	assert.Equal(t, "127.0.0.1:9000", cfg.Address())
}
