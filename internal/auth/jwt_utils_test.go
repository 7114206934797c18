package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "round-trip-secret")

	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-one")
	token, err := GenerateToken(1, "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "key-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestRememberTokenHashing(t *testing.T) {
	raw, hash, err := NewRememberToken()
	require.NoError(t, err)

	// The browser-side value and the stored value must differ, and the
	// stored value must be recomputable from the raw one.
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, hash, HashRememberToken(raw))

	// Tokens are unique per mint
	raw2, hash2, err := NewRememberToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, hash, hash2)
}
