package database

import (
	"context"
	"fmt"

	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const wishlistColumns = `
	id, user_id, name, COALESCE(recipient_name, ''), share_token, is_active,
	created_at, updated_at
`

// WishlistRepository provides database operations for wishlists and items
type WishlistRepository struct {
	db *DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func scanWishlist(row pgx.Row) (*models.Wishlist, error) {
	var w models.Wishlist
	err := row.Scan(
		&w.ID, &w.UserID, &w.Name, &w.RecipientName, &w.ShareToken,
		&w.IsActive, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWishlist creates a new wishlist with a fresh share token
func (r *WishlistRepository) CreateWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	if wishlist.ID == "" {
		wishlist.ID = uuid.New().String()
	}
	if wishlist.ShareToken == "" {
		wishlist.ShareToken = uuid.New().String()
	}

	query := `
		INSERT INTO wishlists (id, user_id, name, recipient_name, share_token, is_active)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		wishlist.ID, wishlist.UserID, wishlist.Name, wishlist.RecipientName,
		wishlist.ShareToken, wishlist.IsActive,
	).Scan(&wishlist.CreatedAt, &wishlist.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create wishlist: %w", err)
	}

	return nil
}

// GetWishlist retrieves a wishlist by ID
func (r *WishlistRepository) GetWishlist(ctx context.Context, id string) (*models.Wishlist, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlists WHERE id = $1`

	w, err := scanWishlist(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("wishlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}

	return w, nil
}

// GetByShareToken retrieves an active wishlist by its share token
func (r *WishlistRepository) GetByShareToken(ctx context.Context, token string) (*models.Wishlist, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM wishlists
		WHERE share_token = $1 AND is_active = true
	`

	w, err := scanWishlist(r.db.Pool.QueryRow(ctx, query, token))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("wishlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist by token: %w", err)
	}

	return w, nil
}

// GetOrCreateDefault returns the user's most recent wishlist, creating a
// starter one when none exists
func (r *WishlistRepository) GetOrCreateDefault(ctx context.Context, userID string) (*models.Wishlist, error) {
	wishlists, err := r.ListUserWishlists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(wishlists) > 0 {
		return wishlists[0], nil
	}

	wishlist := &models.Wishlist{
		UserID:   userID,
		Name:     "My Cave Painting",
		IsActive: true,
	}
	if err := r.CreateWishlist(ctx, wishlist); err != nil {
		return nil, err
	}

	return wishlist, nil
}

// ListUserWishlists lists a user's wishlists, newest first
func (r *WishlistRepository) ListUserWishlists(ctx context.Context, userID string) ([]*models.Wishlist, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}
	defer rows.Close()

	var wishlists []*models.Wishlist
	for rows.Next() {
		w, err := scanWishlist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		wishlists = append(wishlists, w)
	}

	return wishlists, rows.Err()
}

// UpdateWishlist updates a wishlist's name, recipient and active flag
func (r *WishlistRepository) UpdateWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	query := `
		UPDATE wishlists
		SET name = $2, recipient_name = NULLIF($3, ''), is_active = $4, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		wishlist.ID, wishlist.Name, wishlist.RecipientName, wishlist.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update wishlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist not found")
	}

	return nil
}

// DeleteWishlist removes a wishlist and its items
func (r *WishlistRepository) DeleteWishlist(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist not found")
	}

	return nil
}

// AddItem adds a product to a wishlist
func (r *WishlistRepository) AddItem(ctx context.Context, wishlistID, productID string) (*models.WishlistItem, error) {
	item := &models.WishlistItem{
		ID:         uuid.New().String(),
		WishlistID: wishlistID,
		ProductID:  productID,
	}

	query := `
		INSERT INTO wishlist_items (id, wishlist_id, product_id)
		VALUES ($1, $2, $3)
		RETURNING added_at
	`

	err := r.db.Pool.QueryRow(ctx, query, item.ID, wishlistID, productID).Scan(&item.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return item, nil
}

// RemoveItem removes a product from a wishlist
func (r *WishlistRepository) RemoveItem(ctx context.Context, wishlistID, productID string) error {
	query := `DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, wishlistID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item not found")
	}

	return nil
}

// GetItem retrieves a wishlist item by ID, scoped to a wishlist
func (r *WishlistRepository) GetItem(ctx context.Context, itemID, wishlistID string) (*models.WishlistItem, error) {
	var item models.WishlistItem

	query := `
		SELECT id, wishlist_id, product_id, vote, voted_at, added_at
		FROM wishlist_items
		WHERE id = $1 AND wishlist_id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, itemID, wishlistID).Scan(
		&item.ID, &item.WishlistID, &item.ProductID, &item.Vote, &item.VotedAt, &item.AddedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("wishlist item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist item: %w", err)
	}

	return &item, nil
}

// ListItems lists a wishlist's items joined with their products, newest first
func (r *WishlistRepository) ListItems(ctx context.Context, wishlistID string) ([]*models.WishlistItemWithProduct, error) {
	query := `
		SELECT i.id, i.wishlist_id, i.product_id, i.vote, i.voted_at, i.added_at,
		       p.id, p.grug_name, p.real_name, p.category, p.price_range, p.price,
		       p.amazon_url, COALESCE(p.amazon_asin, ''), COALESCE(p.image_url, ''),
		       p.grug_says, p.product_type, p.is_grug_pick, p.is_active,
		       p.is_panic_product, p.tags, p.created_at, p.updated_at
		FROM wishlist_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.wishlist_id = $1
		ORDER BY i.added_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []*models.WishlistItemWithProduct
	for rows.Next() {
		var item models.WishlistItemWithProduct
		var p models.Product
		err := rows.Scan(
			&item.ID, &item.WishlistID, &item.ProductID, &item.Vote, &item.VotedAt, &item.AddedAt,
			&p.ID, &p.GrugName, &p.RealName, &p.Category, &p.PriceRange, &p.Price,
			&p.AmazonURL, &p.AmazonASIN, &p.ImageURL, &p.GrugSays, &p.ProductType,
			&p.IsGrugPick, &p.IsActive, &p.IsPanicProduct, &p.Tags,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		item.Product = &p
		items = append(items, &item)
	}

	return items, rows.Err()
}

// SetVote records a vote on an item. A nil vote clears it.
func (r *WishlistRepository) SetVote(ctx context.Context, itemID string, vote *string) error {
	query := `
		UPDATE wishlist_items
		SET vote = $2,
		    voted_at = CASE WHEN $2 IS NULL THEN NULL ELSE now() END
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, itemID, vote)
	if err != nil {
		return fmt.Errorf("failed to set vote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item not found")
	}

	return nil
}

// GetVoteCounts summarises votes for a wishlist
func (r *WishlistRepository) GetVoteCounts(ctx context.Context, wishlistID string) (*models.VoteCounts, error) {
	var counts models.VoteCounts

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE vote = 'up'),
		       COUNT(*) FILTER (WHERE vote = 'down'),
		       COUNT(*) FILTER (WHERE vote IS NULL)
		FROM wishlist_items
		WHERE wishlist_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, wishlistID).Scan(
		&counts.Total, &counts.Up, &counts.Down, &counts.Pending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote counts: %w", err)
	}

	return &counts, nil
}
