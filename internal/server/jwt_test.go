package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerdoc/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-for-jwt",
		ExpirationHours: 1,
	})
}

func TestGenerateToken_ValidateRoundtrip(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestValidateToken_EmptyToken(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateToken_MalformedToken(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:          "a-different-secret",
		ExpirationHours: 1,
	})

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	expired := NewJWTService(config.JWTConfig{
		Secret:          "test-secret-for-jwt",
		ExpirationHours: -1,
	})

	token, err := expired.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = expired.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestAsTokenValidator(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
