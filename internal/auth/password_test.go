package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndMatch(t *testing.T) {
	hash, err := HashPassword("Secret123", 4)
	require.NoError(t, err)
	require.NotEqual(t, "Secret123", hash)

	assert.True(t, PasswordMatches(hash, "Secret123"))
	assert.False(t, PasswordMatches(hash, "secret123"))
	assert.False(t, PasswordMatches(hash, ""))
}

func TestMatchMalformedHash(t *testing.T) {
	// A corrupt stored hash must be treated as a mismatch, never a match.
	assert.False(t, PasswordMatches("not-a-bcrypt-hash", "Secret123"))
	assert.False(t, PasswordMatches("", "Secret123"))
}

func TestHashOutOfRangeCostFallsBack(t *testing.T) {
	hash, err := HashPassword("Secret123", 99)
	require.NoError(t, err)
	assert.True(t, PasswordMatches(hash, "Secret123"))
}
