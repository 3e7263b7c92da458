package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tok, err := GenerateToken("u1", "grace@example.org", "author", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, "grace@example.org", claims.Email)
	require.Equal(t, "author", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := GenerateToken("u1", "grace@example.org", "author", "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, "wrong-secret")
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tok, err := GenerateToken("u1", "grace@example.org", "author", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, "secret")
	require.Error(t, err)
}

func TestParseTokenMalformed(t *testing.T) {
	_, err := ParseToken("not.a.token", "secret")
	require.Error(t, err)
}
