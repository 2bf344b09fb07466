// Package service provides capability token generation.
package service

// TokenGenerator produces unguessable capability tokens. Both session ids and
// share-link tokens come from the same generator.
type TokenGenerator interface {
	// Generate returns a new cryptographically random token.
	Generate() (string, error)
}
