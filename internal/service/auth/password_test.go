package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashAndCompare(t *testing.T) {
	v := NewBcryptVerifier(4) // minimum cost keeps the test fast

	hash, err := v.Hash("correcthorse")
	require.NoError(t, err)

	assert.NotEqual(t, "correcthorse", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, v.Compare(hash, "correcthorse"))
	assert.Error(t, v.Compare(hash, "wrongpassword"))
}

func TestBcryptHashesAreSalted(t *testing.T) {
	v := NewBcryptVerifier(4)

	first, err := v.Hash("correcthorse")
	require.NoError(t, err)
	second, err := v.Hash("correcthorse")
	require.NoError(t, err)

	// Identical inputs must not produce identical hashes.
	assert.NotEqual(t, first, second)
}

func TestBcryptDefaultCost(t *testing.T) {
	v := NewBcryptVerifier(0)
	assert.Equal(t, 10, v.cost)
}
