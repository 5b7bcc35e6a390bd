// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"time"
)

// defaultSessionTTL bounds how long an issued session token stays valid when
// JWT_TTL is not set.
const defaultSessionTTL = 24 * time.Hour

// minSessionTTL guards against configurations that would expire sessions
// faster than a single long pipeline run.
const minSessionTTL = time.Minute

// JWTConfig holds the signing settings for session tokens issued after a
// successful operator token exchange.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// NewJWTConfig builds the session token configuration from the environment:
// JWT_SECRET (required) and JWT_TTL, a Go duration string such as "24h" or
// "90m" (default 24h).
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret: os.Getenv("JWT_SECRET"),
		TTL:    defaultSessionTTL,
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	if raw := os.Getenv("JWT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
		}
		cfg.TTL = ttl
	}
	if cfg.TTL < minSessionTTL {
		return nil, fmt.Errorf("JWT_TTL must be at least %s, got %s", minSessionTTL, cfg.TTL)
	}

	return cfg, nil
}
