package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.Thresholds.DaysUntilPrompt)
	assert.Equal(t, 10, cfg.Thresholds.LaunchesUntilPrompt)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apprater.yaml")
	body := `
app_id: com.example.notes
thresholds:
  days_until_prompt: 5
  launches_until_prompt: 7
store:
  backend: memory
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	t.Setenv("APPRATER_LAUNCHES_UNTIL_PROMPT", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "com.example.notes", cfg.AppID)
	assert.Equal(t, 5, cfg.Thresholds.DaysUntilPrompt)
	assert.Equal(t, 2, cfg.Thresholds.LaunchesUntilPrompt)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultNamespace, cfg.Store.Namespace)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty app id", mutate: func(c *Config) { c.AppID = "" }},
		{name: "negative days", mutate: func(c *Config) { c.Thresholds.DaysUntilPrompt = -1 }},
		{name: "negative launches", mutate: func(c *Config) { c.Thresholds.LaunchesUntilPrompt = -1 }},
		{name: "empty namespace", mutate: func(c *Config) { c.Store.Namespace = "" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "etcd" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Store.DBPath = "" }},
		{name: "redis without addr", mutate: func(c *Config) {
			c.Store.Backend = BackendRedis
			c.Store.RedisAddr = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
