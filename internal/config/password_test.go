package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "")
		t.Setenv("PASSWORD_PEPPER", "")

		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultBcryptCost, cfg.BcryptCost)
		assert.Empty(t, cfg.Pepper)
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "10")
		t.Setenv("PASSWORD_PEPPER", "pepper")

		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, "pepper", cfg.Pepper)
	})

	for _, raw := range []string{"abc", "12abc", "9", "15"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", raw)
			_, err := NewPasswordConfig()
			assert.Error(t, err)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: bcrypt.MinCost}

	hash, err := cfg.HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, cfg.VerifyPassword("admin123", hash))
	assert.False(t, cfg.VerifyPassword("admin124", hash))
	assert.False(t, cfg.VerifyPassword("", hash))
	assert.False(t, cfg.VerifyPassword("admin123", "not-a-hash"))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "s3cret"}
	plain := &PasswordConfig{BcryptCost: bcrypt.MinCost}

	hash, err := peppered.HashPassword("hr123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("hr123", hash))
	assert.False(t, plain.VerifyPassword("hr123", hash))
}
