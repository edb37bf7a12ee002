package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SHOPLENS_APP_NAME":                os.Getenv("SHOPLENS_APP_NAME"),
		"SHOPLENS_APP_ENV":                 os.Getenv("SHOPLENS_APP_ENV"),
		"SHOPLENS_APP_PORT":                os.Getenv("SHOPLENS_APP_PORT"),
		"SHOPLENS_DATABASE_HOST":           os.Getenv("SHOPLENS_DATABASE_HOST"),
		"SHOPLENS_DATABASE_PORT":           os.Getenv("SHOPLENS_DATABASE_PORT"),
		"SHOPLENS_DATABASE_USER":           os.Getenv("SHOPLENS_DATABASE_USER"),
		"SHOPLENS_DATABASE_PASSWORD":       os.Getenv("SHOPLENS_DATABASE_PASSWORD"),
		"SHOPLENS_DATABASE_DBNAME":         os.Getenv("SHOPLENS_DATABASE_DBNAME"),
		"SHOPLENS_DATABASE_SSLMODE":        os.Getenv("SHOPLENS_DATABASE_SSLMODE"),
		"SHOPLENS_DATABASE_MAX_OPEN_CONNS": os.Getenv("SHOPLENS_DATABASE_MAX_OPEN_CONNS"),
		"SHOPLENS_DATABASE_MAX_IDLE_CONNS": os.Getenv("SHOPLENS_DATABASE_MAX_IDLE_CONNS"),
		"SHOPLENS_JWT_SECRET":              os.Getenv("SHOPLENS_JWT_SECRET"),
		"SHOPLENS_ADMIN_KEY":               os.Getenv("SHOPLENS_ADMIN_KEY"),
		"SHOPLENS_SHOPIFY_API_VERSION":     os.Getenv("SHOPLENS_SHOPIFY_API_VERSION"),
		"SHOPLENS_SHOPIFY_PAGE_SIZE":       os.Getenv("SHOPLENS_SHOPIFY_PAGE_SIZE"),
		"SHOPLENS_SCHEDULER_ENABLED":       os.Getenv("SHOPLENS_SCHEDULER_ENABLED"),
		"SHOPLENS_SCHEDULER_INTERVAL":      os.Getenv("SHOPLENS_SCHEDULER_INTERVAL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shoplens-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "shoplens", cfg.Database.DBName)
		assert.Equal(t, "2024-10", cfg.Shopify.APIVersion)
		assert.Equal(t, 250, cfg.Shopify.PageSize)
		assert.Equal(t, "15m0s", cfg.Scheduler.Interval.String())
		assert.False(t, cfg.Scheduler.Enabled)
	})

	t.Run("loads values from environment variables with SHOPLENS prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLENS_APP_NAME", "test-app")
		os.Setenv("SHOPLENS_APP_PORT", "9000")
		os.Setenv("SHOPLENS_DATABASE_HOST", "testdb.local")
		os.Setenv("SHOPLENS_DATABASE_PORT", "5433")
		os.Setenv("SHOPLENS_SHOPIFY_API_VERSION", "2025-01")
		os.Setenv("SHOPLENS_SCHEDULER_ENABLED", "true")
		os.Setenv("SHOPLENS_SCHEDULER_INTERVAL", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "2025-01", cfg.Shopify.APIVersion)
		assert.True(t, cfg.Scheduler.Enabled)
		assert.Equal(t, "5m0s", cfg.Scheduler.Interval.String())
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLENS_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SHOPLENS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects page size above the platform maximum", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLENS_SHOPIFY_PAGE_SIZE", "500")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page_size")
	})

	t.Run("production requires jwt secret and admin key", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLENS_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")

		os.Setenv("SHOPLENS_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin.key")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "shoplens",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word") // special chars must be escaped
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
