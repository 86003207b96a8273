package config

import (
	"fmt"
	"time"
)

// DefaultJWTExpirationHours is used when JWT_EXPIRATION_HOURS is not set.
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for the recruiter session tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default: 24) and JWT_ISSUER (default: hire-link).
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          getEnvString("JWT_SECRET", ""),
		ExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", DefaultJWTExpirationHours),
		Issuer:          getEnvString("JWT_ISSUER", "hire-link"),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
