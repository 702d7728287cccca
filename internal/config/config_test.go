package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		path := writeConfig(t, `
app:
  environment: test
store:
  backend: memory
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "pousada", cfg.App.Name)
		assert.Equal(t, "memory", cfg.Store.Backend)
		assert.Equal(t, 8080, cfg.API.HTTP.Port)
		assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
		assert.Equal(t, "x-api-extra", cfg.API.Auth.HeaderExtra)
		assert.Equal(t, "exports", cfg.Exports.Path)
	})

	t.Run("sqlite backend gets a default path", func(t *testing.T) {
		path := writeConfig(t, `
store:
  backend: sqlite
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "data/pousada.db", cfg.Store.SQLite.Path)
	})

	t.Run("empty backend defaults to sqlite", func(t *testing.T) {
		path := writeConfig(t, `
app:
  name: test
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Store.Backend)
	})

	t.Run("redis backend requires address", func(t *testing.T) {
		path := writeConfig(t, `
store:
  backend: redis
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		path := writeConfig(t, `
store:
  backend: cassandra
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("auth requires keys when enabled", func(t *testing.T) {
		path := writeConfig(t, `
store:
  backend: memory
api:
  enabled: true
  auth:
    enabled: true
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("POUSADA_TEST_REDIS_ADDR", "localhost:6379")
		path := writeConfig(t, `
store:
  backend: redis
  redis:
    address: ${POUSADA_TEST_REDIS_ADDR}
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", cfg.Store.Redis.Address)
	})
}
