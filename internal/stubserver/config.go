package stubserver

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the stub backend settings, read from the environment with an
// optional .env overlay.
type Config struct {
	Addr      string
	JWTSecret string
	AdminKey  string
	TokenTTL  time.Duration
}

// LoadConfig loads .env (when present) and reads STUB_ADDR, STUB_JWT_SECRET
// and STUB_ADMIN_KEY. Every field has a development default.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:      ":9000",
		JWTSecret: "dev-secret",
		AdminKey:  "dev-admin-key",
		TokenTTL:  24 * time.Hour,
	}
	if v := os.Getenv("STUB_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STUB_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("STUB_ADMIN_KEY"); v != "" {
		cfg.AdminKey = v
	}
	if v := os.Getenv("STUB_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	return cfg
}
