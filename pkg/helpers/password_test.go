package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CompareHashAndPassword(hash, "secret123"))
	assert.False(t, CompareHashAndPassword(hash, "wrongpassword"))
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)

	// Same plaintext, different salts
	assert.NotEqual(t, h1, h2)
	assert.True(t, CompareHashAndPassword(h1, "secret123"))
	assert.True(t, CompareHashAndPassword(h2, "secret123"))
}

func TestCompareHashAndPassword_MalformedHash(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "secret123"))
	assert.False(t, CompareHashAndPassword("", "secret123"))
}
