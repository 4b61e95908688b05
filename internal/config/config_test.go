package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/aura")
	t.Setenv("PORT", "")
	t.Setenv("AI_ENGINE_URL", "")
	t.Setenv("MATCH_POOL_SIZE", "")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:3002", cfg.AIEngineURL)
	assert.Equal(t, 50, cfg.MatchPoolSize)
}

func TestNewServerConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/aura")
	t.Setenv("PORT", "9000")
	t.Setenv("AI_ENGINE_URL", "http://ai.internal:3002")
	t.Setenv("MATCH_POOL_SIZE", "25")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "http://ai.internal:3002", cfg.AIEngineURL)
	assert.Equal(t, 25, cfg.MatchPoolSize)
}

func TestNewServerConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "PORT", "eighty"},
		{"port out of range", "PORT", "70000"},
		{"non-numeric pool size", "MATCH_POOL_SIZE", "many"},
		{"zero pool size", "MATCH_POOL_SIZE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/aura")
			t.Setenv("PORT", "")
			t.Setenv("MATCH_POOL_SIZE", "")
			t.Setenv(tt.key, tt.value)

			_, err := NewServerConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"non-numeric", "soon"},
		{"zero", "0"},
		{"too long", "10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.value)

			_, err := NewJWTConfig()
			assert.Error(t, err)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, cfg.VerifyPassword(hash, "hunter22"))
	assert.Error(t, cfg.VerifyPassword(hash, "wrong"))
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "global-secret")

	peppered, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := peppered.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, peppered.VerifyPassword(hash, "hunter22"))

	plain := &PasswordConfig{BcryptCost: 10}
	assert.Error(t, plain.VerifyPassword(hash, "hunter22"))
}

func TestPasswordConfig_CostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	_, err := NewPasswordConfig()
	assert.Error(t, err)
}
