package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/code-vault/internal/config"
)

func TestResolveConfig(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE", "memory")
	t.Setenv("LOG_LEVEL", "")

	t.Run("environment only", func(t *testing.T) {
		cmd := newServeCmd()
		require.NoError(t, cmd.ParseFlags(nil))

		cfg, err := resolveConfig(cmd, serveFlags{})
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, config.StoreMemory, cfg.Store)
	})

	t.Run("flags win", func(t *testing.T) {
		cmd := newServeCmd()
		args := []string{"--port", "7000", "--store", "sqlite", "--log-level", "debug"}
		require.NoError(t, cmd.ParseFlags(args))

		cfg, err := resolveConfig(cmd, serveFlags{port: 7000, store: "sqlite", logLevel: "debug"})
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, config.StoreSQLite, cfg.Store)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	})

	t.Run("bad store flag", func(t *testing.T) {
		cmd := newServeCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--store", "redis"}))

		_, err := resolveConfig(cmd, serveFlags{store: "redis"})
		assert.Error(t, err)
	})
}
