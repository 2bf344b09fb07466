package testutil

import (
	"context"
	"sync"
	"time"

	capabilityDomain "github.com/allisson/minidrive/internal/capability/domain"
)

// MemoryCapabilityRepository is an in-memory capability repository for tests
// that exercise the store and its adapters without a database.
type MemoryCapabilityRepository struct {
	mu      sync.Mutex
	records map[string]capabilityDomain.Record
}

// NewMemoryCapabilityRepository creates an empty in-memory repository.
func NewMemoryCapabilityRepository() *MemoryCapabilityRepository {
	return &MemoryCapabilityRepository{records: make(map[string]capabilityDomain.Record)}
}

// Upsert stores or replaces the record under its token.
func (m *MemoryCapabilityRepository) Upsert(ctx context.Context, record *capabilityDomain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.Token] = *record
	return nil
}

// Get retrieves a record by token, expired or not.
func (m *MemoryCapabilityRepository) Get(
	ctx context.Context,
	token string,
) (*capabilityDomain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[token]
	if !ok {
		return nil, capabilityDomain.ErrRecordNotFound
	}
	return &record, nil
}

// Delete removes the record under token; absent tokens are a no-op.
func (m *MemoryCapabilityRepository) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, token)
	return nil
}

// DeleteExpired removes all records with expires_at <= now.
func (m *MemoryCapabilityRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for token, record := range m.records {
		if !record.ExpiresAt.After(now) {
			delete(m.records, token)
			count++
		}
	}
	return count, nil
}

// Contains reports whether a record is physically present, expired or not.
func (m *MemoryCapabilityRepository) Contains(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[token]
	return ok
}
