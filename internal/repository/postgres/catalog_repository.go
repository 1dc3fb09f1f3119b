package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/repository"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, barcode, supplier_id, cost_price, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	if err := sqlx.GetContext(ctx, r.db, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	return &product, nil
}

func (r *catalogRepository) SearchProducts(ctx context.Context, search string, limit, offset int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, barcode, supplier_id, cost_price, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR barcode ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	var products []*domain.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// ProductCost reads the product's current unit cost; the materializer
// calls this to stamp cost_price_at_order.
func (r *catalogRepository) ProductCost(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `SELECT cost_price FROM products WHERE id = $1`

	var cost decimal.Decimal
	if err := sqlx.GetContext(ctx, r.db, &cost, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, repository.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get cost for product %s: %w", productID, err)
	}

	return cost, nil
}

func (r *catalogRepository) GetSuppliers(ctx context.Context, search string, limit, offset int) ([]*domain.Supplier, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, COALESCE(phone, '') AS phone, COALESCE(email, '') AS email, created_at, updated_at
		FROM suppliers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	var suppliers []*domain.Supplier
	if err := sqlx.SelectContext(ctx, r.db, &suppliers, query, search, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *catalogRepository) GetStores(ctx context.Context) ([]*domain.Store, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM stores
		ORDER BY name
	`

	var stores []*domain.Store
	if err := sqlx.SelectContext(ctx, r.db, &stores, query); err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	return stores, nil
}
