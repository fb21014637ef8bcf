package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.FilterMinLen)
	assert.Equal(t, 20, cfg.FilterMaxLen)
	assert.True(t, cfg.SeedFixture)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().ListenAddr, cfg.ListenAddr)
	assert.Equal(t, Default().SessionTTL, cfg.SessionTTL)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userdir.yaml")
	content := []byte(`
listen_addr: ":8081"
log_level: debug
cookie_key: "0123456789abcdef0123456789abcdef"
session_ttl: 30m
filter_min_len: 2
filter_max_len: 10
seed_fixture: false
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2, cfg.FilterMinLen)
	assert.Equal(t, 10, cfg.FilterMaxLen)
	assert.False(t, cfg.SeedFixture)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Run("ShortCookieKey", func(t *testing.T) {
		cfg := Default()
		cfg.CookieKey = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("ZeroTTL", func(t *testing.T) {
		cfg := Default()
		cfg.SessionTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("InvertedFilterBounds", func(t *testing.T) {
		cfg := Default()
		cfg.FilterMinLen = 30
		cfg.FilterMaxLen = 10
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownLogLevel", func(t *testing.T) {
		cfg := Default()
		cfg.LogLevel = "verbose"
		assert.Error(t, cfg.Validate())
	})
}
