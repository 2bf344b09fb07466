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

// MySQLCapabilityRepository implements capability record persistence for MySQL.
// Uses transaction support via database.GetTx().
type MySQLCapabilityRepository struct {
	db *sql.DB
}

// Upsert atomically inserts or replaces the record stored under record.Token.
func (m *MySQLCapabilityRepository) Upsert(ctx context.Context, record *capabilityDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO capabilities (token, payload, expires_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				  payload = VALUES(payload),
				  expires_at = VALUES(expires_at),
				  updated_at = VALUES(updated_at)`

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
func (m *MySQLCapabilityRepository) Get(
	ctx context.Context,
	token string,
) (*capabilityDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT token, payload, expires_at, created_at, updated_at
			  FROM capabilities WHERE token = ?`

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
func (m *MySQLCapabilityRepository) Delete(ctx context.Context, token string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM capabilities WHERE token = ?`

	if _, err := querier.ExecContext(ctx, query, token); err != nil {
		return apperrors.Wrap(err, "failed to delete capability")
	}
	return nil
}

// DeleteExpired removes every record with expires_at <= now and returns the
// number of rows removed.
func (m *MySQLCapabilityRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM capabilities WHERE expires_at <= ?`

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

// NewMySQLCapabilityRepository creates a new MySQL capability repository.
func NewMySQLCapabilityRepository(db *sql.DB) *MySQLCapabilityRepository {
	return &MySQLCapabilityRepository{db: db}
}
