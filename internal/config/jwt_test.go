package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := NewJWTConfig()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "")
		t.Setenv("JWT_ISSUER", "")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, "test-secret", cfg.Secret)
		assert.Equal(t, 24, cfg.ExpirationHours)
		assert.Equal(t, "hire-link", cfg.Issuer)
		assert.Equal(t, 24*time.Hour, cfg.Expiration())
	})

	t.Run("custom expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "2")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, cfg.Expiration())
	})

	t.Run("zero expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "0")

		_, err := NewJWTConfig()
		assert.Error(t, err)
	})
}
