package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10, cfg.DefaultResolution)
	assert.Equal(t, 1<<20, cfg.MaxUncompactCells)
	assert.EqualValues(t, 64<<20, cfg.CacheMaxCost)
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", ":9090")
	t.Setenv("DEFAULT_RESOLUTION", "14")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, 14, cfg.DefaultResolution)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "a5grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/cells.db\nrate_limit_per_minute: 30\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cells.db", cfg.DBPath)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base, err := Load("")
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"resolution", func(c *Config) { c.DefaultResolution = 30 }},
		{"uncompact", func(c *Config) { c.MaxUncompactCells = 0 }},
		{"rate", func(c *Config) { c.RateLimitPerMinute = -1 }},
		{"format", func(c *Config) { c.LogFormat = "xml" }},
		{"port", func(c *Config) { c.Port = "" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := *base
			c.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
