package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Generate(t *testing.T) {
	generator := NewTokenService()

	token, err := generator.Generate()
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// 32 random bytes survive the round trip.
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestTokenService_Generate_TokensAreUnique(t *testing.T) {
	generator := NewTokenService()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := generator.Generate()
		require.NoError(t, err)
		assert.False(t, seen[token], "generated a duplicate token")
		seen[token] = true
	}
}
