package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store represents a store location
type Store struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Supplier represents a vendor purchase orders are sent to
type Supplier struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product holds the catalog facts for a sellable/consumable item.
// Catalog fields are immutable from the consolidation core's point of
// view; they are edited only through catalog management.
type Product struct {
	ID         string          `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Barcode    string          `json:"barcode" db:"barcode"`
	SupplierID string          `json:"supplier_id" db:"supplier_id"`
	CostPrice  decimal.Decimal `json:"cost_price" db:"cost_price"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// InventoryRecord tracks stock for one product in one store. Owned by
// the ledger; the consolidation core only reads it.
type InventoryRecord struct {
	ProductID    string    `json:"product_id" db:"product_id"`
	StoreID      int64     `json:"store_id" db:"store_id"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	MinimumStock int       `json:"minimum_stock" db:"minimum_stock"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PurchaseOrderItem is a line snapshot captured at materialization.
// CostPriceAtOrder is copied from the product's cost at that moment and
// never re-read, so historical orders are immune to price changes.
type PurchaseOrderItem struct {
	ID               int64           `json:"id" db:"id"`
	OrderID          int64           `json:"order_id" db:"order_id"`
	ProductID        string          `json:"product_id" db:"product_id"`
	ProductName      string          `json:"product_name" db:"product_name"`
	Barcode          string          `json:"barcode" db:"barcode"`
	Quantity         int             `json:"quantity" db:"quantity"`
	CostPriceAtOrder decimal.Decimal `json:"cost_price_at_order" db:"cost_price_at_order"`
	IsReceived       bool            `json:"is_received" db:"is_received"`
}

// PurchaseOrder is the aggregate root for one purchase document sent to
// one vendor. Items are immutable after creation; only Status changes,
// through the receiving flow.
type PurchaseOrder struct {
	ID           int64               `json:"id" db:"id"`
	OrderDate    Day                 `json:"order_date" db:"order_date"`
	SupplierID   string              `json:"supplier_id" db:"supplier_id"`
	SupplierName string              `json:"supplier_name" db:"supplier_name"`
	StoreID      int64               `json:"store_id" db:"store_id"`
	CreatedByID  string              `json:"created_by_id" db:"created_by_id"`
	Status       int                 `json:"status" db:"status"`
	Notes        string              `json:"notes" db:"notes"`
	Items        []PurchaseOrderItem `json:"items" db:"-"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// PurchaseOrderCreate is the create-request handed to the order store;
// one per supplier per materialize call.
type PurchaseOrderCreate struct {
	OrderDate   Day                 `json:"order_date"`
	SupplierID  string              `json:"supplier_id"`
	StoreID     int64               `json:"store_id"`
	CreatedByID string              `json:"created_by_id"`
	Notes       string              `json:"notes"`
	Items       []PurchaseOrderItem `json:"items"`
}

// ReorderSuggestion is a below-minimum stock candidate surfaced to the
// purchase-list screens; display/sort hints only, never mutated here.
type ReorderSuggestion struct {
	Product      Product `json:"product" db:"-"`
	StoreID      int64   `json:"store_id" db:"store_id"`
	CurrentStock int     `json:"current_stock" db:"current_stock"`
	MinimumStock int     `json:"minimum_stock" db:"minimum_stock"`
	Deficit      int     `json:"deficit" db:"deficit"`
}
