package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	capabilityDomain "github.com/allisson/minidrive/internal/capability/domain"
	"github.com/allisson/minidrive/internal/clock"
	apperrors "github.com/allisson/minidrive/internal/errors"
)

// keyPrefix namespaces capability records in a shared Redis instance.
const keyPrefix = "capability:"

// redisRecord is the stored JSON shape for a capability record.
type redisRecord struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedisCapabilityRepository implements capability record persistence on Redis.
// The absolute expiry is converted to a server-side TTL on write, so Redis
// evicts records itself; DeleteExpired is a counting no-op.
type RedisCapabilityRepository struct {
	client redis.Cmdable
	clock  clock.Clock
}

// Upsert stores the record under its token with a server-side TTL. SET fully
// replaces value and TTL in one command, which gives the atomic replacement
// the store contract requires.
func (r *RedisCapabilityRepository) Upsert(ctx context.Context, record *capabilityDomain.Record) error {
	ttl := record.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		// Already expired on arrival: make sure nothing lingers.
		return r.Delete(ctx, record.Token)
	}

	value, err := json.Marshal(redisRecord{
		Payload:   record.Payload,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to encode capability")
	}

	if err := r.client.Set(ctx, keyPrefix+record.Token, value, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to upsert capability")
	}
	return nil
}

// Get retrieves a capability record by token.
// Returns ErrRecordNotFound if the key is absent (including server-evicted keys).
func (r *RedisCapabilityRepository) Get(
	ctx context.Context,
	token string,
) (*capabilityDomain.Record, error) {
	value, err := r.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, capabilityDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability")
	}

	var stored redisRecord
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode capability")
	}

	return &capabilityDomain.Record{
		Token:     token,
		Payload:   stored.Payload,
		ExpiresAt: stored.ExpiresAt,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	}, nil
}

// Delete removes the record stored under token. Deleting an absent token is a no-op.
func (r *RedisCapabilityRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return apperrors.Wrap(err, "failed to delete capability")
	}
	return nil
}

// DeleteExpired reports zero removals: Redis expires keys server-side, so the
// periodic sweep has nothing left to do on this backend.
func (r *RedisCapabilityRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// NewRedisCapabilityRepository creates a new Redis capability repository.
func NewRedisCapabilityRepository(client redis.Cmdable, clk clock.Clock) *RedisCapabilityRepository {
	return &RedisCapabilityRepository{client: client, clock: clk}
}
