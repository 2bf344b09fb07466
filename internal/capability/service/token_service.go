package service

import (
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/allisson/minidrive/internal/errors"
)

// tokenService implements TokenGenerator using crypto/rand.
type tokenService struct{}

// Generate creates a new cryptographically secure 32-byte random token.
// The token is base64 URL-encoded for safe use in cookies and URL paths.
// The token itself is the lookup key, so it carries the full 256 bits of
// entropy and must never be derived from anything guessable.
func (t *tokenService) Generate() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token")
	}

	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}

// NewTokenService creates a new TokenGenerator instance.
func NewTokenService() TokenGenerator {
	return &tokenService{}
}
