package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `
	id, grug_name, real_name, category, price_range, price, amazon_url,
	COALESCE(amazon_asin, ''), COALESCE(image_url, ''), grug_says, product_type,
	is_grug_pick, is_active, is_panic_product, tags, created_at, updated_at
`

// ProductRepository provides database operations for products
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.GrugName, &p.RealName, &p.Category, &p.PriceRange, &p.Price,
		&p.AmazonURL, &p.AmazonASIN, &p.ImageURL, &p.GrugSays, &p.ProductType,
		&p.IsGrugPick, &p.IsActive, &p.IsPanicProduct, &p.Tags,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// CreateProduct creates a new product record
func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.ProductType == "" {
		product.ProductType = models.ProductTypeAffiliate
	}

	query := `
		INSERT INTO products (
			id, grug_name, real_name, category, price_range, price, amazon_url,
			amazon_asin, image_url, grug_says, product_type, is_grug_pick,
			is_active, is_panic_product, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		product.ID, product.GrugName, product.RealName, product.Category,
		product.PriceRange, product.Price, product.AmazonURL, product.AmazonASIN,
		product.ImageURL, product.GrugSays, product.ProductType, product.IsGrugPick,
		product.IsActive, product.IsPanicProduct, product.Tags,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetProduct retrieves a product by ID
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// ListAffiliateProducts lists all active affiliate products, newest first
func (r *ProductRepository) ListAffiliateProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND product_type = $1
		ORDER BY created_at DESC
	`
	return r.queryProducts(ctx, query, models.ProductTypeAffiliate)
}

// ListMerchProducts lists active merch and own-brand products, newest first
func (r *ProductRepository) ListMerchProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND product_type = ANY($1)
		ORDER BY created_at DESC
	`
	return r.queryProducts(ctx, query, []string{models.ProductTypeMerch, models.ProductTypeOwn})
}

// ListByCategory lists active products in a category, grug picks first
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND category = $1
		ORDER BY is_grug_pick DESC, created_at DESC
	`
	return r.queryProducts(ctx, query, category)
}

// SearchProducts searches active products by name or tag
func (r *ProductRepository) SearchProducts(ctx context.Context, term string) ([]*models.Product, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true
		  AND (grug_name ILIKE $1 OR real_name ILIKE $1
		       OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE $1))
		ORDER BY is_grug_pick DESC, created_at DESC
	`
	return r.queryProducts(ctx, query, pattern)
}

// ListGrugPicks lists active featured products, newest first
func (r *ProductRepository) ListGrugPicks(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND is_grug_pick = true
		ORDER BY created_at DESC
	`
	return r.queryProducts(ctx, query)
}

// ListPanicProducts lists last-minute gift products, cheapest first
func (r *ProductRepository) ListPanicProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND is_panic_product = true
		ORDER BY price ASC
	`
	return r.queryProducts(ctx, query)
}

// UpdateProduct updates a product record
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET grug_name = $2, real_name = $3, category = $4, price_range = $5,
		    price = $6, amazon_url = $7, amazon_asin = $8, image_url = $9,
		    grug_says = $10, product_type = $11, is_grug_pick = $12,
		    is_active = $13, is_panic_product = $14, tags = $15, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		product.ID, product.GrugName, product.RealName, product.Category,
		product.PriceRange, product.Price, product.AmazonURL, product.AmazonASIN,
		product.ImageURL, product.GrugSays, product.ProductType, product.IsGrugPick,
		product.IsActive, product.IsPanicProduct, product.Tags,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}

// DeactivateProduct soft-deletes a product
func (r *ProductRepository) DeactivateProduct(ctx context.Context, id string) error {
	query := `UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}
