package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:9000/api/v1", c.BaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "kamdhenuseva.db", c.CacheDBPath)
	assert.Equal(t, "us-east-1", c.S3Region)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:9000/api/v1", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseJSON_Overlays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	body := map[string]any{
		"base_url":        "https://api.ashram.org/api/v1",
		"request_timeout": "30s",
		"s3_bucket":       "cow-photos",
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	oldArgs := os.Args
	os.Args = []string{"cli", "-c", path}
	t.Cleanup(func() { os.Args = oldArgs })

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	assert.Equal(t, "https://api.ashram.org/api/v1", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "cow-photos", cfg.S3Bucket)
	assert.Equal(t, "kamdhenuseva.db", cfg.CacheDBPath, "untouched fields keep defaults")
}
