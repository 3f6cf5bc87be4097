package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, hasher.Verify("password123", hash))
	assert.False(t, hasher.Verify("password124", hash))
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same-plaintext")
	require.NoError(t, err)
	second, err := hasher.Hash("same-plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-plaintext", first))
	assert.True(t, hasher.Verify("same-plaintext", second))
}

func TestPasswordHasher_InvalidHash(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, hasher.Verify("anything", "not-a-bcrypt-hash"))
}

func TestNewPasswordHasher_CostClamped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(100).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).cost)
}
