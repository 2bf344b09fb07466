// Package session binds the expiring capability store to the HTTP session
// lifecycle: serialization of session payloads, default expiry policy, and the
// request middleware that resolves session cookies.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	capabilityDomain "github.com/allisson/minidrive/internal/capability/domain"
	"github.com/allisson/minidrive/internal/capability/store"
	apperrors "github.com/allisson/minidrive/internal/errors"
	"github.com/allisson/minidrive/internal/metrics"
)

// ErrSessionNotFound indicates the session id is absent or expired. Both cases
// surface as unauthenticated; they are deliberately indistinguishable.
var ErrSessionNotFound = apperrors.Wrap(apperrors.ErrUnauthorized, "session not found")

// Payload is the session state stored against a session id.
type Payload struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// Manager maps session semantics onto the capability store. It owns payload
// serialization and the default expiry policy; the store owns expiry itself.
type Manager struct {
	store      *store.Store
	defaultTTL time.Duration
	logger     *slog.Logger
	metrics    metrics.BusinessMetrics
}

// NewManager creates a session manager. defaultTTL is used whenever Save is
// called without a positive max-age.
func NewManager(
	capabilityStore *store.Store,
	defaultTTL time.Duration,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) *Manager {
	return &Manager{
		store:      capabilityStore,
		defaultTTL: defaultTTL,
		logger:     logger,
		metrics:    businessMetrics,
	}
}

// DefaultTTL returns the TTL applied when Save is called without a max-age.
// The login handler uses it to align the cookie Max-Age with the stored expiry.
func (m *Manager) DefaultTTL() time.Duration {
	return m.defaultTTL
}

// Load resolves a session id to its payload. Absent and expired sessions both
// return ErrSessionNotFound. A payload that fails to deserialize is treated as
// absent: the broken record is deleted, a diagnostic is logged, and the
// request pipeline continues as unauthenticated rather than erroring.
// Store-level ErrUnavailable propagates untouched.
func (m *Manager) Load(ctx context.Context, sessionID string) (*Payload, error) {
	data, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, capabilityDomain.ErrRecordNotFound) {
			m.metrics.RecordOperation(ctx, "session", "load", "miss")
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		m.logger.Warn("corrupt session payload, treating as absent",
			slog.Any("error", err))
		if delErr := m.store.Delete(ctx, sessionID); delErr != nil {
			m.logger.Warn("failed to delete corrupt session", slog.Any("error", delErr))
		}
		m.metrics.RecordOperation(ctx, "session", "load", "corrupt")
		return nil, ErrSessionNotFound
	}

	m.metrics.RecordOperation(ctx, "session", "load", "success")
	return &payload, nil
}

// Save persists the payload under sessionID with expiry now + maxAge, falling
// back to the default TTL when maxAge is not positive. Every save fully
// replaces the prior expiry: sessions renew on activity as a fixed window,
// they do not slide independently.
func (m *Manager) Save(ctx context.Context, sessionID string, payload *Payload, maxAge time.Duration) error {
	ttl := m.defaultTTL
	if maxAge > 0 {
		ttl = maxAge
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode session payload")
	}

	if err := m.store.Put(ctx, sessionID, data, ttl); err != nil {
		return err
	}

	m.metrics.RecordOperation(ctx, "session", "save", "success")
	return nil
}

// Destroy removes the session. Destroying an absent session succeeds; the id
// may be reused by a later Save as a fresh session.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return err
	}

	m.metrics.RecordOperation(ctx, "session", "destroy", "success")
	return nil
}
