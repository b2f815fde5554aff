package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	for _, pwd := range []string{"Passw0rd!", "correct horse battery staple", "ünïcödé-pässwörd"} {
		hash, err := h.Hash(pwd)
		require.NoError(t, err)
		assert.NotEqual(t, pwd, hash)
		assert.True(t, h.Verify(pwd, hash), "password %q must verify", pwd)
		assert.False(t, h.Verify(pwd+"x", hash))
	}
}

func TestBcryptHasherSaltsEveryHash(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	b, err := h.Hash("Passw0rd!")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("Passw0rd!", a))
	assert.True(t, h.Verify("Passw0rd!", b))
}

func TestBcryptHasherUsesConfiguredCost(t *testing.T) {
	h, err := NewBcryptHasher(5)
	require.NoError(t, err)

	hash, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestBcryptHasherVerifyMalformedHash(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}
	assert.False(t, h.Verify("Passw0rd!", "not-a-hash"))
	assert.False(t, h.Verify("Passw0rd!", ""))
}

func TestNewBcryptHasherRejectsBadCost(t *testing.T) {
	_, err := NewBcryptHasher(2)
	assert.Error(t, err)
	_, err = NewBcryptHasher(40)
	assert.Error(t, err)
}
