package config

import (
	"encoding/json"
	"os"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/flagx"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can spell the timeout either as "15s" or as
// integer nanoseconds.
type jsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CacheDBPath    string         `json:"cache_db_path"`

	S3Bucket          string `json:"s3_bucket"`
	S3Region          string `json:"s3_region"`
	S3AccessKeyID     string `json:"s3_access_key_id"`
	S3SecretAccessKey string `json:"s3_secret_access_key"`
	S3BaseEndpoint    string `json:"s3_base_endpoint"`
	S3PublicBaseURL   string `json:"s3_public_base_url"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. Absent file path means no overlay. Only non-zero JSON
// fields override; the intended order is defaults -> JSON -> flags.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CacheDBPath != "" {
		cfg.CacheDBPath = jc.CacheDBPath
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3AccessKeyID != "" {
		cfg.S3AccessKeyID = jc.S3AccessKeyID
	}
	if jc.S3SecretAccessKey != "" {
		cfg.S3SecretAccessKey = jc.S3SecretAccessKey
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.S3PublicBaseURL != "" {
		cfg.S3PublicBaseURL = jc.S3PublicBaseURL
	}
}
