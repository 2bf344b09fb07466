package domain

import (
	"github.com/allisson/minidrive/internal/errors"
)

// Capability store errors.
var (
	// ErrRecordNotFound indicates the token is absent or expired. The two cases
	// are deliberately indistinguishable to prevent token enumeration.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "capability not found")

	// ErrInvalidTTL indicates a caller requested a non-positive time-to-live.
	ErrInvalidTTL = errors.Wrap(errors.ErrInvalidInput, "ttl must be positive")
)
