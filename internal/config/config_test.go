package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Catalog.BaseURL, cfg.Catalog.BaseURL)
	assert.Equal(t, StorageBolt, cfg.Storage.Backend)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `catalog:
  api_key: abc123
  requests_per_second: 5
  timeout: 3s
storage:
  backend: file
  path: /tmp/reel-prefs
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.Catalog.APIKey)
	assert.Equal(t, 5.0, cfg.Catalog.RequestsPerSecond)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/reel-prefs", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset keys keep their defaults
	assert.Equal(t, "en-US", cfg.Catalog.Language)
	assert.True(t, cfg.IsConfigured())
}

func TestEnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  language: de-DE\n"), 0644))
	t.Setenv("REEL_CATALOG_ACCESS_TOKEN", "token-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "token-from-env", cfg.Catalog.AccessToken)
	assert.Equal(t, "de-DE", cfg.Catalog.Language)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Catalog.APIKey = "saved-key"
	cfg.Storage.Backend = StorageFile
	cfg.Catalog.Timeout = 7 * time.Second
	require.NoError(t, SaveConfigTo(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.Catalog.APIKey)
	assert.Equal(t, StorageFile, loaded.Storage.Backend)
	assert.Equal(t, 7*time.Second, loaded.Catalog.Timeout)
}
