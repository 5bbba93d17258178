package models

import (
	"time"
)

// Product represents a gift product in the catalogue
type Product struct {
	ID             string    `json:"id" db:"id"`
	GrugName       string    `json:"grug_name" db:"grug_name"`
	RealName       string    `json:"real_name" db:"real_name"`
	Category       string    `json:"category" db:"category"`
	PriceRange     string    `json:"price_range" db:"price_range"`
	Price          float64   `json:"price" db:"price"`
	AmazonURL      string    `json:"amazon_url" db:"amazon_url"`
	AmazonASIN     string    `json:"amazon_asin,omitempty" db:"amazon_asin"`
	ImageURL       string    `json:"image_url,omitempty" db:"image_url"`
	GrugSays       string    `json:"grug_says" db:"grug_says"`
	ProductType    string    `json:"product_type" db:"product_type"`
	IsGrugPick     bool      `json:"is_grug_pick" db:"is_grug_pick"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsPanicProduct bool      `json:"is_panic_product" db:"is_panic_product"`
	Tags           []string  `json:"tags" db:"tags"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ProductType constants
const (
	ProductTypeAffiliate = "affiliate"
	ProductTypeMerch     = "merch"
	ProductTypeOwn       = "own"
)

// PriceRange constants, in shiny coins
const (
	PriceRangeFew       = "few"
	PriceRangeSome      = "some"
	PriceRangeMany      = "many"
	PriceRangeBigPile   = "big-pile"
	PriceRangeWholeCave = "whole-cave"
)

// PriceCoins returns the 1-5 coin count used to display a price range.
func PriceCoins(priceRange string) int {
	switch priceRange {
	case PriceRangeFew:
		return 1
	case PriceRangeSome:
		return 2
	case PriceRangeMany:
		return 3
	case PriceRangeBigPile:
		return 4
	case PriceRangeWholeCave:
		return 5
	default:
		return 1
	}
}
