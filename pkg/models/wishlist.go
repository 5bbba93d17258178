package models

import (
	"time"
)

// Wishlist represents a cave painting: a shareable list of gift ideas
type Wishlist struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	RecipientName string    `json:"recipient_name,omitempty" db:"recipient_name"`
	ShareToken    string    `json:"share_token" db:"share_token"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Vote values for wishlist items
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// WishlistItem represents a product saved to a wishlist, with its vote
type WishlistItem struct {
	ID         string     `json:"id" db:"id"`
	WishlistID string     `json:"wishlist_id" db:"wishlist_id"`
	ProductID  string     `json:"product_id" db:"product_id"`
	Vote       *string    `json:"vote" db:"vote"`
	VotedAt    *time.Time `json:"voted_at,omitempty" db:"voted_at"`
	AddedAt    time.Time  `json:"added_at" db:"added_at"`
}

// WishlistItemWithProduct is a wishlist item joined with its product
type WishlistItemWithProduct struct {
	WishlistItem
	Product *Product `json:"product"`
}

// VoteCounts summarises votes across a wishlist
type VoteCounts struct {
	Total   int `json:"total"`
	Up      int `json:"up"`
	Down    int `json:"down"`
	Pending int `json:"pending"`
}
