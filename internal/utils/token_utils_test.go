package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("u-1", "secret", time.Hour, "pg-console")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", jwt.WithIssuer("pg-console"))
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	valid, err := GenerateJWT("u-1", "secret", time.Hour, "pg-console")
	require.NoError(t, err)
	expired, err := GenerateJWT("u-1", "secret", -time.Minute, "pg-console")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(valid, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(valid, "secret", jwt.WithIssuer("someone-else"))
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}
