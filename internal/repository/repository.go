package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/arvella/stockroom/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// CatalogRepository reads catalog facts. The consolidation core never
// writes through it; catalog edits happen in catalog management.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SearchProducts(ctx context.Context, search string, limit, offset int) ([]*domain.Product, error)
	ProductCost(ctx context.Context, productID string) (decimal.Decimal, error)
	GetSuppliers(ctx context.Context, search string, limit, offset int) ([]*domain.Supplier, error)
	GetStores(ctx context.Context) ([]*domain.Store, error)
}

// InventoryRepository reads the per-store stock ledger. Read-only from
// this side; stock moves only through the intake/outbound flows.
type InventoryRepository interface {
	CurrentStock(ctx context.Context, productID string, storeID int64) (int, error)
	BelowMinimum(ctx context.Context, storeID int64) ([]domain.ReorderSuggestion, error)
}

// OrderRepository is the durable purchase-order store.
type OrderRepository interface {
	CreateOrder(ctx context.Context, req domain.PurchaseOrderCreate) (*domain.PurchaseOrder, error)
	GetOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	ListOrders(ctx context.Context, storeID int64, status *int, limit, offset int) ([]*domain.PurchaseOrder, error)
	UpdateOrderStatus(ctx context.Context, id int64, status int) error
}
