package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/repository"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder writes the order header and its item snapshots in one
// transaction and returns the stored aggregate with its assigned id.
// Items are never updated after this insert.
func (r *orderRepository) CreateOrder(ctx context.Context, req domain.PurchaseOrderCreate) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO purchase_orders (
				order_date, supplier_id, store_id, created_by_id, status, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRowContext(
			ctx, headerQuery,
			req.OrderDate.Time(), req.SupplierID, req.StoreID, req.CreatedByID,
			domain.StatusOrdered, req.Notes,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert purchase order: %w", err)
		}

		itemQuery := `
			INSERT INTO purchase_order_items (
				order_id, product_id, product_name, barcode, quantity, cost_price_at_order, is_received
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		stmt, err := tx.PrepareContext(ctx, itemQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare item insert: %w", err)
		}
		defer stmt.Close()

		order.Items = make([]domain.PurchaseOrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			item.OrderID = order.ID
			if err := stmt.QueryRowContext(
				ctx,
				order.ID, item.ProductID, item.ProductName, item.Barcode,
				item.Quantity, item.CostPriceAtOrder, item.IsReceived,
			).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to insert order item %s: %w", item.ProductID, err)
			}
			order.Items = append(order.Items, item)
		}

		supplierQuery := `SELECT name FROM suppliers WHERE id = $1`
		if err := tx.QueryRowContext(ctx, supplierQuery, req.SupplierID).Scan(&order.SupplierName); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("unknown supplier %s: %w", req.SupplierID, repository.ErrNotFound)
			}
			return fmt.Errorf("failed to resolve supplier %s: %w", req.SupplierID, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.OrderDate = req.OrderDate
	order.SupplierID = req.SupplierID
	order.StoreID = req.StoreID
	order.CreatedByID = req.CreatedByID
	order.Status = domain.StatusOrdered
	order.Notes = req.Notes

	return &order, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	headerQuery := `
		SELECT
			o.id, o.order_date, o.supplier_id, s.name AS supplier_name,
			o.store_id, o.created_by_id, o.status, o.notes, o.created_at, o.updated_at
		FROM purchase_orders o
		JOIN suppliers s ON s.id = o.supplier_id
		WHERE o.id = $1
	`

	var row orderRow
	if err := sqlx.GetContext(ctx, r.db, &row, headerQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	order := row.toDomain()

	itemQuery := `
		SELECT id, order_id, product_id, product_name, barcode, quantity, cost_price_at_order, is_received
		FROM purchase_order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`

	if err := sqlx.SelectContext(ctx, r.db, &order.Items, itemQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get items for order %d: %w", id, err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, storeID int64, status *int, limit, offset int) ([]*domain.PurchaseOrder, error) {
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
		SELECT
			o.id, o.order_date, o.supplier_id, s.name AS supplier_name,
			o.store_id, o.created_by_id, o.status, o.notes, o.created_at, o.updated_at
		FROM purchase_orders o
		JOIN suppliers s ON s.id = o.supplier_id
		WHERE o.store_id = $1 AND ($2::int IS NULL OR o.status = $2)
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT $3 OFFSET $4
	`

	var rows []orderRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, storeID, status, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*domain.PurchaseOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status int) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update status for order %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// orderRow maps the header query; order_date comes back as a timestamp
// and is truncated to a Day on the way out.
type orderRow struct {
	ID           int64     `db:"id"`
	OrderDate    time.Time `db:"order_date"`
	SupplierID   string    `db:"supplier_id"`
	SupplierName string    `db:"supplier_name"`
	StoreID      int64     `db:"store_id"`
	CreatedByID  string    `db:"created_by_id"`
	Status       int       `db:"status"`
	Notes        string    `db:"notes"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row orderRow) toDomain() *domain.PurchaseOrder {
	return &domain.PurchaseOrder{
		ID:           row.ID,
		OrderDate:    domain.DayOf(row.OrderDate),
		SupplierID:   row.SupplierID,
		SupplierName: row.SupplierName,
		StoreID:      row.StoreID,
		CreatedByID:  row.CreatedByID,
		Status:       row.Status,
		Notes:        row.Notes,
	}
}
