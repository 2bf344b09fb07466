package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	capabilityDomain "github.com/allisson/minidrive/internal/capability/domain"
	"github.com/allisson/minidrive/internal/clock"
	apperrors "github.com/allisson/minidrive/internal/errors"
)

// Store is the expiring capability store. All expiry decisions happen here,
// against a single injected clock; adapters (sessions, share links) never
// re-implement expiry checks.
//
// Concurrency: the Store itself holds no locks. Atomicity per token is
// delegated to the backend's single-statement upsert/delete primitives, so
// concurrent callers on distinct tokens never contend with each other.
type Store struct {
	repo   Repository
	clock  clock.Clock
	maxTTL time.Duration
	logger *slog.Logger
}

// New creates a Store over the given repository. maxTTL bounds the expiry any
// caller can request; zero means unbounded.
func New(repo Repository, clk clock.Clock, maxTTL time.Duration, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		clock:  clk,
		maxTTL: maxTTL,
		logger: logger,
	}
}

// Put upserts a capability with expiry computed server-side as now + ttl.
// The ttl is never trusted verbatim: non-positive values are rejected with
// ErrInvalidTTL and values above the configured maximum are clamped.
// Replaying the same Put is idempotent with respect to observable state.
func (s *Store) Put(ctx context.Context, token string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return capabilityDomain.ErrInvalidTTL
	}
	if s.maxTTL > 0 && ttl > s.maxTTL {
		ttl = s.maxTTL
	}

	now := s.clock.Now()
	record := &capabilityDomain.Record{
		Token:     token,
		Payload:   payload,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return s.backendError(err, "put")
	}
	return nil
}

// ClampTTL returns the TTL Put will actually apply for a requested ttl.
// Callers that report an absolute expiry to users should go through this so
// the reported value matches the stored one.
func (s *Store) ClampTTL(ttl time.Duration) time.Duration {
	if s.maxTTL > 0 && ttl > s.maxTTL {
		return s.maxTTL
	}
	return ttl
}

// Get returns the payload stored under token if the record exists and has not
// expired. Missing and expired tokens are indistinguishable: both return
// ErrRecordNotFound. An expired record found on read is deleted immediately
// (lazy expiration), so unread garbage does not wait for the next sweep.
//
// Backend failures surface as ErrUnavailable, never as not-found: a down
// backend must not log users out.
func (s *Store) Get(ctx context.Context, token string) ([]byte, error) {
	record, err := s.repo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, capabilityDomain.ErrRecordNotFound) {
			return nil, capabilityDomain.ErrRecordNotFound
		}
		return nil, s.backendError(err, "get")
	}

	if record.Expired(s.clock.Now()) {
		// Lazy cleanup. A concurrent sweep may already have removed the row;
		// deletion is idempotent so neither path errors because of the other.
		if err := s.repo.Delete(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired capability",
				slog.Any("error", err))
		}
		return nil, capabilityDomain.ErrRecordNotFound
	}

	return record.Payload, nil
}

// Delete unconditionally removes the capability. Deleting an absent token succeeds.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.repo.Delete(ctx, token); err != nil {
		return s.backendError(err, "delete")
	}
	return nil
}

// Sweep removes every record whose expiry is at or before the current clock
// reading and returns the number removed. Calling it again with no intervening
// writes removes nothing.
func (s *Store) Sweep(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, s.backendError(err, "sweep")
	}
	return count, nil
}

// backendError tags a repository failure as ErrUnavailable and logs the cause.
func (s *Store) backendError(err error, operation string) error {
	s.logger.Error("capability store backend error",
		slog.String("operation", operation),
		slog.Any("error", err))
	return apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
}
