package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UsageRepository provides access to the per-identifier daily message ledger.
type UsageRepository struct {
	db *DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// GetCount returns the number of messages served for the identifier on the
// given date. A missing row means zero.
func (r *UsageRepository) GetCount(ctx context.Context, identifier, identifierType, date string) (int, error) {
	var count int

	query := `
		SELECT message_count
		FROM chat_usage
		WHERE identifier = $1 AND identifier_type = $2 AND message_date = $3
	`

	err := r.db.Pool.QueryRow(ctx, query, identifier, identifierType, date).Scan(&count)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get usage count: %w", err)
	}

	return count, nil
}

// Increment atomically bumps the counter for the identifier on the given
// date, creating the row at 1 if absent. The upsert keeps concurrent
// increments from losing updates; callers must not read-modify-write.
func (r *UsageRepository) Increment(ctx context.Context, identifier, identifierType, date string) error {
	query := `
		INSERT INTO chat_usage (identifier, identifier_type, message_date, message_count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (identifier, identifier_type, message_date) DO UPDATE SET
			message_count = chat_usage.message_count + 1
	`

	_, err := r.db.Pool.Exec(ctx, query, identifier, identifierType, date)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}

	return nil
}
