package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.General.Currency = "ARS"
	cfg.Store.Backend = BackendRedis
	cfg.Store.RedisDB = 3
	cfg.Appearance.Theme = "tarifa-light"
	cfg.Report.Brand = "Studio Norte"

	require.NoError(t, SaveFile(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[appearance]\ntheme = \"terminal\"\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "USD", cfg.General.Currency)
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store\nbackend = "), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestEnvOverridesRedis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.RedisPassword = "from-file"

	t.Setenv("TARIFA_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("TARIFA_REDIS_PASSWORD", "")

	assert.Equal(t, "redis.internal:6380", GetRedisAddr(cfg))
	assert.Equal(t, "from-file", GetRedisPassword(cfg))
}

func TestStatePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := DefaultConfig()
	assert.Equal(t, "/tmp/xdg-data/tarifa/state.db", StatePath(cfg))

	cfg.Store.Path = "/srv/tarifa.db"
	assert.Equal(t, "/srv/tarifa.db", StatePath(cfg))
}
