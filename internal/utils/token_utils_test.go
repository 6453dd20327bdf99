package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarrafhq/sarraf-backend/internal/utils"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "test-secret", time.Hour, "sarraf-backend")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "sarraf-backend", claims.Issuer)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "test-secret", time.Hour, "sarraf-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "test-secret", -time.Minute, "sarraf-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestGenerateSecureRandomString(t *testing.T) {
	a, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	b, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	_, err = utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, utils.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}
