// Package domain defines the expiring capability record, the single data model
// behind sessions and share links: an unguessable token mapped to an opaque
// payload that becomes invalid at an absolute deadline.
package domain

import (
	"time"
)

// Record represents a capability stored under an opaque token.
type Record struct {
	// Token is the opaque unique lookup key. It must be generated, never sequential.
	Token string
	// Payload is opaque to the store; only the owning adapter can interpret it.
	Payload []byte
	// ExpiresAt is the absolute deadline. The record is logically absent at or
	// after this instant, whether or not it has been physically deleted.
	ExpiresAt time.Time
	// CreatedAt is when the record was first written.
	CreatedAt time.Time
	// UpdatedAt is when the record was last replaced.
	UpdatedAt time.Time
}

// Expired reports whether the record is logically absent at the given instant.
func (r *Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
