// Package config holds runtime settings for the Kamdhenuseva CLI.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - BaseURL: root of the backend REST API, including any path prefix.
//   - RequestTimeout: upper bound for one whole HTTP request.
//   - CacheDBPath: path of the local sqlite file used for offline reads.
//   - S3*: settings for the admin-side cow photo uploader. Empty bucket
//     disables uploads.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	CacheDBPath    string

	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BaseEndpoint    string
	S3PublicBaseURL   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:9000/api/v1"
	c.RequestTimeout = 15 * time.Second
	c.CacheDBPath = "kamdhenuseva.db"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
