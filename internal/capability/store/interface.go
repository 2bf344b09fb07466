// Package store implements the expiring capability store, the only place in
// the application where capability expiry is authoritative.
package store

import (
	"context"
	"time"

	capabilityDomain "github.com/allisson/minidrive/internal/capability/domain"
)

// Repository defines persistence operations for capability records. Backends
// must provide atomic upsert, point lookup, and point delete by token; no
// expiry logic lives here.
type Repository interface {
	// Upsert atomically creates or fully replaces the record stored under
	// record.Token. A reader never observes a mix of old and new fields.
	Upsert(ctx context.Context, record *capabilityDomain.Record) error

	// Get retrieves a record by token, expired or not.
	// Returns ErrRecordNotFound if no record is physically present.
	Get(ctx context.Context, token string) (*capabilityDomain.Record, error)

	// Delete removes the record. It is a no-op (not an error) when absent.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes every record with expires_at <= now and returns
	// the number removed. Safe on an empty store.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
