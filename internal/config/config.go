// Package config reads environment-driven configuration. Required values are
// checked up front so a misconfigured process dies before it starts serving.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/shoplane/shop-backend/internal/credential"
)

// Product identifier schemes (see internal/sequence).
const (
	ProductIDSequential = "sequential"
	ProductIDRandom     = "random"
)

// Config holds environment-driven configuration.
type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	AllowedOrigins  string
	Env             string
	UploadDir       string
	ProductIDScheme string
}

// Dev reports whether the process runs in development mode. Only then are
// internal error details echoed in responses.
func (c Config) Dev() bool { return c.Env == "development" }

// Load reads a .env file when present, then the environment. It returns an
// error for any missing or unacceptable required value.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:            getenv("PORT", "8071"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AllowedOrigins:  getenv("ALLOWED_ORIGINS", "*"),
		Env:             getenv("APP_ENV", "production"),
		UploadDir:       getenv("UPLOAD_DIR", "./uploads"),
		ProductIDScheme: getenv("PRODUCT_ID_SCHEME", ProductIDSequential),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing required environment variable: DATABASE_URL")
	}
	if len(cfg.JWTSecret) < credential.MinSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be set and at least %d characters", credential.MinSecretLength)
	}
	if cfg.ProductIDScheme != ProductIDSequential && cfg.ProductIDScheme != ProductIDRandom {
		return Config{}, fmt.Errorf("PRODUCT_ID_SCHEME must be %q or %q", ProductIDSequential, ProductIDRandom)
	}
	return cfg, nil
}

// Origins returns the allow-list as fiber's cors middleware expects it:
// a comma separated string with surrounding whitespace trimmed.
func (c Config) Origins() string {
	parts := strings.Split(c.AllowedOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
