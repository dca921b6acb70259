package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	c := NewBcryptCredential(bcrypt.MinCost)

	hash, err := c.Hash("s3cret-Pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-Pass", hash)
	assert.True(t, c.Verify("s3cret-Pass", hash))
	assert.False(t, c.Verify("s3cret-pass", hash))
	assert.False(t, c.Verify("s3cret-Pass", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	c := NewBcryptCredential(bcrypt.MinCost)

	a, err := c.Hash("same")
	require.NoError(t, err)
	b, err := c.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	c := NewBcryptCredential(bcrypt.MinCost)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := c.Hash(string(long))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCostOutOfRangeFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptCredential(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptCredential(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptCredential(bcrypt.MinCost).cost)
}
