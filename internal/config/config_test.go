package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.DatabaseURL = "postgres://localhost/tools"
	cfg.APIKey = "test-key"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 20*time.Second, cfg.EntryDelay())
	assert.Equal(t, 10*time.Second, cfg.BatchDelay())
	assert.Equal(t, 60*time.Second, cfg.IdleSleep())
	assert.Equal(t, 200, cfg.MinContentChars)
	assert.Equal(t, 40000, cfg.MaxContentChars)
	assert.Equal(t, "gemini", cfg.Provider)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"database_url": "postgres://db.example/tools",
		"api_key": "file-key",
		"batch_size": 3,
		"use_browser": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.example/tools", cfg.DatabaseURL)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 3, cfg.BatchSize)
	assert.True(t, cfg.UseBrowser)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseURL")

	cfg = validConfig()
	cfg.APIKey = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_BatchSizeRange(t *testing.T) {
	cfg := validConfig()
	cfg.BatchSize = 100
	assert.Error(t, cfg.Validate())
}

func TestValidate_ContentBounds(t *testing.T) {
	cfg := validConfig()
	cfg.MinContentChars = 50000
	cfg.MaxContentChars = 40000
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	overrides := Config{
		DatabaseURL: "postgres://override/tools",
		BatchSize:   2,
	}

	merged := overrides.MergeWithDefaults(validConfig())

	assert.Equal(t, "postgres://override/tools", merged.DatabaseURL)
	assert.Equal(t, "test-key", merged.APIKey)
	assert.Equal(t, 2, merged.BatchSize)
	assert.Equal(t, 20, merged.EntryDelaySecs)
}

func TestMergeWithDefaults_ExplicitZeroTemperature(t *testing.T) {
	zero := float32(0)
	overrides := Config{Temperature: &zero}

	defaults := validConfig()
	hot := float32(0.9)
	defaults.Temperature = &hot

	merged := overrides.MergeWithDefaults(defaults)
	require.NotNil(t, merged.Temperature)
	assert.Equal(t, float32(0), *merged.Temperature)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/tools")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://env/tools", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestApplyEnv_DoesNotOverrideExplicit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/tools")

	cfg := validConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://localhost/tools", cfg.DatabaseURL)
}
