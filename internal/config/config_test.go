package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/careerdoc")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/careerdoc", cfg.DatabaseURL)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, 12, cfg.Password.BcryptCost)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "fake-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "fake-key", cfg.GeminiAPIKey)
	assert.Equal(t, 72, cfg.JWT.ExpirationHours)
	assert.Equal(t, 10, cfg.Password.BcryptCost)
	assert.Equal(t, "pepper", cfg.Password.Pepper)
}

func TestFromEnv_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestFromEnv_MissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestFromEnv_MissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_PortRange(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:        8080,
			DatabaseURL: "postgres://localhost/db",
			JWT:         JWTConfig{Secret: "s", ExpirationHours: 24},
			Password:    PasswordConfig{BcryptCost: 12},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidate_BcryptCostRange(t *testing.T) {
	cfg := &Config{
		Port:        8080,
		DatabaseURL: "postgres://localhost/db",
		JWT:         JWTConfig{Secret: "s", ExpirationHours: 24},
		Password:    PasswordConfig{BcryptCost: 9},
	}
	assert.Error(t, cfg.Validate())

	cfg.Password.BcryptCost = 15
	assert.Error(t, cfg.Validate())

	for cost := 10; cost <= 14; cost++ {
		cfg.Password.BcryptCost = cost
		assert.NoError(t, cfg.Validate(), "cost %d should be valid", cost)
	}
}

func TestValidate_ExpirationHours(t *testing.T) {
	cfg := &Config{
		Port:        8080,
		DatabaseURL: "postgres://localhost/db",
		JWT:         JWTConfig{Secret: "s", ExpirationHours: 0},
		Password:    PasswordConfig{BcryptCost: 12},
	}
	assert.Error(t, cfg.Validate())
}

func TestHashPassword_VerifyRoundtrip(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

func TestHashPassword_PepperChangesVerification(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "secret-pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("password123", hash))
	assert.False(t, plain.VerifyPassword("password123", hash))
}
