package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(42, "admin", "secret", time.Hour)
	require.NoError(t, err)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestGenerateTokenExpiry(t *testing.T) {
	token, err := GenerateToken(1, "customer", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
