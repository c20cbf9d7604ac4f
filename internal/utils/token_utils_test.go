package utils_test

import (
	"testing"
	"time"

	"github.com/dalpho/currency_exchange_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	userID := "user-123"

	tokenString, err := utils.GenerateJWT(userID, "agent", secret, time.Hour, "currency-exchange-app")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := utils.ParseAndValidateJWT(tokenString, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "agent", claims.Role)
	assert.Equal(t, "currency-exchange-app", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	tokenString, err := utils.GenerateJWT("user-123", "agent", "right-secret", time.Hour, "issuer")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, "wrong-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	tokenString, err := utils.GenerateJWT("user-123", "agent", "secret", -time.Minute, "issuer")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(tokenString, "secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestHashRefreshToken(t *testing.T) {
	token, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)

	hash := utils.HashRefreshToken(token)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, token, hash)
	assert.True(t, utils.CompareRefreshTokenHash(token, hash))
	assert.False(t, utils.CompareRefreshTokenHash("other-token", hash))
}

func TestGenerateSecureRandomString_Unique(t *testing.T) {
	first, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	second, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 64)
}
