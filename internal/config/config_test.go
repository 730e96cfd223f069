package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 512, cfg.LLMMaxTokens)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\nLLM_MODEL=from-file\n"), 0o600))
	t.Setenv("LLM_MODEL", "from-env")
	t.Setenv("KAFKA_BROKERS", "a:9092, ,b:9092")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "from-env", cfg.LLMModel)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Env: "development", JWTTTL: time.Hour, StorageBackend: StorageLocal, MaxUploadMB: 10, LLMTimeout: time.Second}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"ok", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"driver without url", func(c *Config) { c.DBDriver = DriverPostgres }, true},
		{"sqlite with url", func(c *Config) { c.DBDriver = DriverSQLite; c.DatabaseURL = "file:portal.db" }, false},
		{"production without secret", func(c *Config) { c.Env = "production" }, true},
		{"s3 without bucket", func(c *Config) { c.StorageBackend = StorageS3 }, true},
		{"unknown storage", func(c *Config) { c.StorageBackend = "ftp" }, true},
		{"llm timeout above cap", func(c *Config) { c.LLMTimeout = 5 * time.Minute }, true},
		{"llm timeout at cap", func(c *Config) { c.LLMTimeout = MaxLLMTimeout }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
