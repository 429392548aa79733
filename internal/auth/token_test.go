package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("sid-1", "Acme", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, "sid-1", claims.SessionID)
	require.Equal(t, "Acme", claims.Username)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("sid-1", "Acme", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	require.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("sid-1", "Acme", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	require.Error(t, err)
}
