package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "base.db", cfg.Database)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, filepath.Join("data", "base.db"), cfg.DatabasePath())
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
data_dir = "/var/lib/lawbook"
database = "laws.db"

[log]
level = "debug"
json = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/lawbook", cfg.DataDir)
	assert.Equal(t, "laws.db", cfg.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "/var/lib/lawbook/laws.db", cfg.DatabasePath())
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(DefaultFileName, []byte(`database = "catalog.db"`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "catalog.db", cfg.Database)
	assert.Equal(t, "./data", cfg.DataDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawbook.toml")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir = "from-file"`), 0o644))
	t.Setenv("LAWBOOK_DATA_DIR", "from-env")
	t.Setenv("LAWBOOK_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DataDir)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestDatabasePath_Absolute(t *testing.T) {
	cfg := &Config{DataDir: "./data", Database: "/tmp/other.db"}
	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath())
}

func TestLoadWithViper_EmptyDatabase(t *testing.T) {
	v := New()
	v.Set("database", "")
	_, err := LoadWithViper(v)
	require.Error(t, err)
}
