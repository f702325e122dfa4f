package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "skypulse", cfg.Service.Name)
	assert.Equal(t, 8090, cfg.Service.Port)
	assert.Equal(t, "app.bsky.feed.post", cfg.Jetstream.Collection)
	assert.Equal(t, "en", cfg.Jetstream.Language)
	assert.Equal(t, "skypulse:posts", cfg.Queue.Stream)
	assert.Equal(t, 5*time.Second, cfg.Queue.BlockTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 0.4, cfg.Pipeline.PositiveCutoff)
	assert.Equal(t, -0.4, cfg.Pipeline.NegativeCutoff)
	assert.Equal(t, 24*time.Hour, cfg.Pipeline.DedupWindow)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
service:
  port: 9000
jetstream:
  keywords:
    - vancouver
    - yvr
queue:
  stream: custom:posts
pipeline:
  dedup_window: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Service.Port)
	assert.Equal(t, []string{"vancouver", "yvr"}, cfg.Jetstream.Keywords)
	assert.Equal(t, "custom:posts", cfg.Queue.Stream)
	assert.Equal(t, time.Hour, cfg.Pipeline.DedupWindow)

	// Unset fields still pick up defaults.
	assert.Equal(t, "skypulse", cfg.Service.Name)
	assert.Equal(t, "en", cfg.Jetstream.Language)
}

func TestEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("queue:\n  stream: from-file\n"), 0o600))

	t.Setenv("QUEUE_STREAM", "from-env")
	t.Setenv("TARGET_KEYWORDS", "vancouver, british columbia")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("APP_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Queue.Stream)
	assert.Equal(t, []string{"vancouver", "british columbia"}, cfg.Jetstream.Keywords)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.True(t, cfg.Service.Debug)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.yml", GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/skypulse/config.yml")
	assert.Equal(t, "/etc/skypulse/config.yml", GetConfigPath("config.yml"))
}
