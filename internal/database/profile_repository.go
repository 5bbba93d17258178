package database

import (
	"context"
	"fmt"

	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/jackc/pgx/v5"
)

// ProfileRepository provides database operations for account profiles
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile retrieves a profile by user ID
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile

	query := `
		SELECT id, COALESCE(grug_name, ''), is_admin, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.GrugName, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// IsAdmin reports whether the account has the admin flag set. Lookup
// failures degrade to false so identity resolution never rejects a request.
func (r *ProfileRepository) IsAdmin(ctx context.Context, userID string) bool {
	profile, err := r.GetProfile(ctx, userID)
	if err != nil {
		return false
	}
	return profile.IsAdmin
}
