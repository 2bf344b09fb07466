// Package domain defines the share grant domain types.
package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/minidrive/internal/errors"
)

// Grant is the payload stored behind a share token. It grants the bearer
// read-only access to the folder's metadata and file list until the token
// expires.
type Grant struct {
	FolderID uuid.UUID `json:"folder_id"`
	OwnerID  uuid.UUID `json:"owner_id"`
}

// Domain-specific errors for share operations.
var (
	// ErrShareNotFound covers never-issued, revoked and expired tokens alike.
	// Collapsing the three keeps resolution from disclosing grant history.
	ErrShareNotFound = errors.Wrap(errors.ErrNotFound, "share not found")
)

// ParseDuration converts a human duration such as "1d", "12h" or "30m" into
// a TTL. Unparsable or non-positive input returns fallback instead of an
// error: a bad duration on a share request degrades to the default rather
// than failing the request.
func ParseDuration(input string, fallback time.Duration) time.Duration {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return fallback
	}

	// "1d" style: days are not a time.ParseDuration unit.
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return fallback
		}
		return time.Duration(days) * 24 * time.Hour
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
