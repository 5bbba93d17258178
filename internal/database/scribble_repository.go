package database

import (
	"context"
	"fmt"

	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const scribbleColumns = `
	id, slug, title, excerpt, content, published_at, is_published,
	pinned, pinned_at, pinned_order, created_at, updated_at
`

// ScribbleRepository provides database operations for scribbles
type ScribbleRepository struct {
	db *DB
}

// NewScribbleRepository creates a new scribble repository
func NewScribbleRepository(db *DB) *ScribbleRepository {
	return &ScribbleRepository{db: db}
}

func scanScribble(row pgx.Row) (*models.Scribble, error) {
	var s models.Scribble
	err := row.Scan(
		&s.ID, &s.Slug, &s.Title, &s.Excerpt, &s.Content, &s.PublishedAt,
		&s.IsPublished, &s.Pinned, &s.PinnedAt, &s.PinnedOrder,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScribbleRepository) queryScribbles(ctx context.Context, query string, args ...interface{}) ([]*models.Scribble, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scribbles: %w", err)
	}
	defer rows.Close()

	var scribbles []*models.Scribble
	for rows.Next() {
		s, err := scanScribble(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scribble: %w", err)
		}
		scribbles = append(scribbles, s)
	}

	return scribbles, rows.Err()
}

// ListPublished lists published scribbles, newest first
func (r *ScribbleRepository) ListPublished(ctx context.Context) ([]*models.Scribble, error) {
	query := `
		SELECT ` + scribbleColumns + `
		FROM scribbles
		WHERE is_published = true
		ORDER BY published_at DESC
	`
	return r.queryScribbles(ctx, query)
}

// ListAll lists every scribble including drafts, newest first
func (r *ScribbleRepository) ListAll(ctx context.Context) ([]*models.Scribble, error) {
	query := `
		SELECT ` + scribbleColumns + `
		FROM scribbles
		ORDER BY published_at DESC
	`
	return r.queryScribbles(ctx, query)
}

// ListPinned lists pinned published scribbles in pin order
func (r *ScribbleRepository) ListPinned(ctx context.Context, limit int) ([]*models.Scribble, error) {
	query := `
		SELECT ` + scribbleColumns + `
		FROM scribbles
		WHERE pinned = true AND is_published = true
		ORDER BY pinned_order ASC NULLS LAST, pinned_at DESC, published_at DESC
		LIMIT $1
	`
	return r.queryScribbles(ctx, query, limit)
}

// GetBySlug retrieves a scribble by slug
func (r *ScribbleRepository) GetBySlug(ctx context.Context, slug string) (*models.Scribble, error) {
	query := `SELECT ` + scribbleColumns + ` FROM scribbles WHERE slug = $1`

	s, err := scanScribble(r.db.Pool.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("scribble not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scribble: %w", err)
	}

	return s, nil
}

// CreateScribble creates a new scribble record
func (r *ScribbleRepository) CreateScribble(ctx context.Context, scribble *models.Scribble) error {
	if scribble.ID == "" {
		scribble.ID = uuid.New().String()
	}

	query := `
		INSERT INTO scribbles (id, slug, title, excerpt, content, published_at, is_published, pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		scribble.ID, scribble.Slug, scribble.Title, scribble.Excerpt,
		scribble.Content, scribble.PublishedAt, scribble.IsPublished, scribble.Pinned,
	).Scan(&scribble.CreatedAt, &scribble.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create scribble: %w", err)
	}

	return nil
}

// UpdateScribble updates a scribble record
func (r *ScribbleRepository) UpdateScribble(ctx context.Context, scribble *models.Scribble) error {
	query := `
		UPDATE scribbles
		SET slug = $2, title = $3, excerpt = $4, content = $5,
		    published_at = $6, is_published = $7, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		scribble.ID, scribble.Slug, scribble.Title, scribble.Excerpt,
		scribble.Content, scribble.PublishedAt, scribble.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("failed to update scribble: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scribble not found")
	}

	return nil
}

// SetPinned pins or unpins a scribble. Pinning stamps pinned_at and takes an
// optional explicit order; unpinning clears both.
func (r *ScribbleRepository) SetPinned(ctx context.Context, id string, pinned bool, order *int) error {
	var query string
	var err error

	if pinned {
		query = `
			UPDATE scribbles
			SET pinned = true, pinned_at = now(), pinned_order = $2, updated_at = now()
			WHERE id = $1
		`
		_, err = r.db.Pool.Exec(ctx, query, id, order)
	} else {
		query = `
			UPDATE scribbles
			SET pinned = false, pinned_at = NULL, pinned_order = NULL, updated_at = now()
			WHERE id = $1
		`
		_, err = r.db.Pool.Exec(ctx, query, id)
	}

	if err != nil {
		return fmt.Errorf("failed to set pinned: %w", err)
	}

	return nil
}

// DeleteScribble removes a scribble record
func (r *ScribbleRepository) DeleteScribble(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM scribbles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scribble: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scribble not found")
	}

	return nil
}
