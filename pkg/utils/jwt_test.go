package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	userID := uuid.New()

	token, expiresAt, err := NewAccessToken("secret", userID, "admin", 1)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := ParseAccessToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewAccessToken("secret", uuid.New(), "user", 1)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", token)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not-a-token")
	require.Error(t, err)
}
