package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CurrentStock(ctx context.Context, productID string, storeID int64) (int, error) {
	query := `
		SELECT current_stock
		FROM inventory_records
		WHERE product_id = $1 AND store_id = $2
	`

	var stock int
	if err := sqlx.GetContext(ctx, r.db, &stock, query, productID, storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get stock for product %s in store %d: %w", productID, storeID, err)
	}

	return stock, nil
}

// BelowMinimum lists products whose stock dipped below the store's
// minimum, worst deficit first. Display/sort hint for the reorder
// screen only.
func (r *inventoryRepository) BelowMinimum(ctx context.Context, storeID int64) ([]domain.ReorderSuggestion, error) {
	query := `
		SELECT
			p.id, p.name, p.barcode, p.supplier_id, p.cost_price, p.created_at, p.updated_at,
			i.store_id, i.current_stock, i.minimum_stock,
			i.minimum_stock - i.current_stock AS deficit
		FROM inventory_records i
		JOIN products p ON p.id = i.product_id
		WHERE i.store_id = $1 AND i.current_stock < i.minimum_stock
		ORDER BY deficit DESC, p.name ASC
	`

	rows, err := r.db.QueryxContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list below-minimum items: %w", err)
	}
	defer rows.Close()

	var suggestions []domain.ReorderSuggestion
	for rows.Next() {
		var s domain.ReorderSuggestion
		if err := rows.Scan(
			&s.Product.ID, &s.Product.Name, &s.Product.Barcode, &s.Product.SupplierID,
			&s.Product.CostPrice, &s.Product.CreatedAt, &s.Product.UpdatedAt,
			&s.StoreID, &s.CurrentStock, &s.MinimumStock, &s.Deficit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read suggestion rows: %w", err)
	}

	return suggestions, nil
}
