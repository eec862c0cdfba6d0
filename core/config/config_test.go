package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"mod-sync/core/errdefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "./mods", cfg.Mods.Dir)
	assert.Equal(t, "https://mods.factorio.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 10, cfg.Catalog.TimeoutSeconds)
	assert.Equal(t, 120, cfg.Download.TimeoutSeconds)
	assert.Equal(t, "version", cfg.Sync.Policy)
	assert.Equal(t, 0, cfg.Sync.Workers)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.Contains(t, cfg.Download.URLTemplate, "{name}")
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "MODS_DIR=/games/factorio/mods\nSYNC_POLICY=Timestamp\nSYNC_WORKERS=3\nMETRICS_ENABLED=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644))
	t.Cleanup(func() {
		for _, k := range []string{"MODS_DIR", "SYNC_POLICY", "SYNC_WORKERS", "METRICS_ENABLED"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/games/factorio/mods", cfg.Mods.Dir)
	assert.Equal(t, "timestamp", cfg.Sync.Policy)
	assert.Equal(t, 3, cfg.Sync.PoolSize())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_InvalidPolicy(t *testing.T) {
	t.Setenv("SYNC_POLICY", "alphabetical")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrValidation)
	assert.Contains(t, err.Error(), "sync")
}

func TestValidate_OfficialNeedsCredentials(t *testing.T) {
	t.Setenv("DOWNLOAD_USE_OFFICIAL", "true")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorIs(t, err, errdefs.ErrValidation)

	t.Setenv("CATALOG_USERNAME", "me")
	t.Setenv("CATALOG_TOKEN", "secret")
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.Download.UseOfficial)
}

func TestValidate_DisabledSectionsAreSkipped(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	t.Setenv("DATABASE_ENABLED", "true")
	_, err = LoadConfig(t.TempDir())
	assert.ErrorIs(t, err, errdefs.ErrValidation)
}

func TestSyncConfig_PoolSize(t *testing.T) {
	assert.Equal(t, 2*runtime.NumCPU(), SyncConfig{}.PoolSize())
	assert.Equal(t, 5, SyncConfig{Workers: 5}.PoolSize())
}
