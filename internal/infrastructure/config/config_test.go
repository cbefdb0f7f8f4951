package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "memory", cfg.Cart.Store)
	assert.Equal(t, 7*24*time.Hour, cfg.Cart.Retention)
	assert.Equal(t, 2, cfg.Checkout.MaxRetries)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.IsProduction())
}

func TestConfigValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	t.Run("rejects unknown cart store", func(t *testing.T) {
		cfg := valid(t)
		cfg.Cart.Store = "s3"
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		cfg := valid(t)
		cfg.Database.Driver = "oracle"
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive retention", func(t *testing.T) {
		cfg := valid(t)
		cfg.Cart.Retention = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects negative retry bound", func(t *testing.T) {
		cfg := valid(t)
		cfg.Checkout.MaxRetries = -1
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects empty catalog path", func(t *testing.T) {
		cfg := valid(t)
		cfg.Catalog.Path = ""
		require.Error(t, cfg.Validate())
	})
}

func TestRedisAddr(t *testing.T) {
	c := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", c.Addr())
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", DBName: "carts", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=carts sslmode=disable", c.DSN())
}
