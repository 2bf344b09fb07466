// Package repository provides capability record persistence for PostgreSQL,
// MySQL and Redis backends.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	capabilityDomain "github.com/allisson/minidrive/internal/capability/domain"
	"github.com/allisson/minidrive/internal/database"
	apperrors "github.com/allisson/minidrive/internal/errors"
)

// PostgreSQLCapabilityRepository implements capability record persistence for
// PostgreSQL. Uses transaction support via database.GetTx().
type PostgreSQLCapabilityRepository struct {
	db *sql.DB
}

// Upsert atomically inserts or replaces the record stored under record.Token.
// The single INSERT ... ON CONFLICT statement guarantees payload and expiry
// are replaced together.
func (p *PostgreSQLCapabilityRepository) Upsert(ctx context.Context, record *capabilityDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO capabilities (token, payload, expires_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (token) DO UPDATE
			  SET payload = EXCLUDED.payload,
				  expires_at = EXCLUDED.expires_at,
				  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.Token,
		record.Payload,
		record.ExpiresAt,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert capability")
	}
	return nil
}

// Get retrieves a capability record by token, whether expired or not.
// Returns ErrRecordNotFound if no row is physically present.
func (p *PostgreSQLCapabilityRepository) Get(
	ctx context.Context,
	token string,
) (*capabilityDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT token, payload, expires_at, created_at, updated_at
			  FROM capabilities WHERE token = $1`

	var record capabilityDomain.Record

	err := querier.QueryRowContext(ctx, query, token).Scan(
		&record.Token,
		&record.Payload,
		&record.ExpiresAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, capabilityDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability")
	}

	return &record, nil
}

// Delete removes the record stored under token. Deleting an absent token is a no-op.
func (p *PostgreSQLCapabilityRepository) Delete(ctx context.Context, token string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM capabilities WHERE token = $1`

	if _, err := querier.ExecContext(ctx, query, token); err != nil {
		return apperrors.Wrap(err, "failed to delete capability")
	}
	return nil
}

// DeleteExpired removes every record with expires_at <= now and returns the
// number of rows removed. The expires_at index keeps this a range delete.
func (p *PostgreSQLCapabilityRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM capabilities WHERE expires_at <= $1`

	result, err := querier.ExecContext(ctx, query, now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired capabilities")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted capabilities")
	}
	return count, nil
}

// NewPostgreSQLCapabilityRepository creates a new PostgreSQL capability repository.
func NewPostgreSQLCapabilityRepository(db *sql.DB) *PostgreSQLCapabilityRepository {
	return &PostgreSQLCapabilityRepository{db: db}
}
