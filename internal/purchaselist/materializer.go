package purchaselist

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/arvella/stockroom/internal/domain"
)

// OrderCreator is the durable purchase-order store boundary. The create
// call is the only operation here that may block on I/O.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req domain.PurchaseOrderCreate) (*domain.PurchaseOrder, error)
}

// CostProvider resolves a product's current unit cost. Looked up at
// materialization time so the order stamps today's cost, not the cost
// at the moment the item was put on the cart.
type CostProvider interface {
	ProductCost(ctx context.Context, productID string) (decimal.Decimal, error)
}

// Result reports the outcome of an all-suppliers materialization.
// Created may be shorter than the number of supplier partitions
// attempted: partitions fail independently, already-created orders for
// other suppliers stay created, and the date-slice is cleared from the
// cart regardless. FailedSupplierIDs names the partitions whose create
// was attempted and failed, so callers can report partial completion
// without diffing supplier sets. Re-adding failed items is left to the
// user.
type Result struct {
	Created           []*domain.PurchaseOrder `json:"created"`
	FailedSupplierIDs []string                `json:"failed_supplier_ids"`
}

// Materializer converts cart slices into purchase orders. It holds the
// cart's lock across the whole filter-build-submit-clear sequence, so a
// concurrent add cannot slip into the slice between filter and clear.
type Materializer struct {
	list   *List
	orders OrderCreator
	costs  CostProvider

	// Now supplies the order date. Override in tests.
	Now func() time.Time
}

func NewMaterializer(list *List, orders OrderCreator, costs CostProvider) *Materializer {
	return &Materializer{
		list:   list,
		orders: orders,
		costs:  costs,
		Now:    time.Now,
	}
}

// MaterializeForSupplier commits the (supplierID, day) cart slice as a
// single purchase order. Entries with quantity 0 are excluded from the
// order but removed with the rest of the slice on success. On any
// failure the cart is left untouched and the error surfaced.
func (m *Materializer) MaterializeForSupplier(ctx context.Context, supplierID, createdByID string, day domain.Day, storeID int64) (*domain.PurchaseOrder, error) {
	m.list.mu.Lock()
	defer m.list.mu.Unlock()

	slice := m.list.sliceForSupplierLocked(supplierID, day)
	if len(slice) == 0 {
		return nil, ErrEmptyOrder
	}

	order, err := m.createForSupplier(ctx, supplierID, createdByID, slice, storeID)
	if err != nil {
		return nil, err
	}

	m.list.clearSupplierSliceLocked(supplierID, day)

	log.Info().
		Int64("order_id", order.ID).
		Str("supplier_id", supplierID).
		Str("day", day.String()).
		Int("items", len(order.Items)).
		Msg("purchase order materialized")

	return order, nil
}

// MaterializeAllForDate commits every orderable entry added on the
// given day, one purchase order per supplier. Partitions are attempted
// independently: a failed supplier does not undo orders already created
// for the others, and the whole date-slice is cleared from the cart
// after the attempt either way. Inspect Result.FailedSupplierIDs to
// detect partial completion.
func (m *Materializer) MaterializeAllForDate(ctx context.Context, createdByID string, day domain.Day, storeID int64) (*Result, error) {
	m.list.mu.Lock()
	defer m.list.mu.Unlock()

	groups := make(map[string][]Entry)
	var supplierIDs []string
	for _, e := range m.list.entries {
		if e.AddedAt != day || e.Quantity <= 0 {
			continue
		}
		if _, seen := groups[e.SupplierID]; !seen {
			supplierIDs = append(supplierIDs, e.SupplierID)
		}
		groups[e.SupplierID] = append(groups[e.SupplierID], e)
	}

	if len(supplierIDs) == 0 {
		return nil, ErrEmptyOrder
	}

	result := &Result{}
	for _, supplierID := range supplierIDs {
		order, err := m.createForSupplier(ctx, supplierID, createdByID, groups[supplierID], storeID)
		if err != nil {
			log.Warn().Err(err).
				Str("supplier_id", supplierID).
				Str("day", day.String()).
				Msg("supplier partition failed, continuing with remaining suppliers")
			result.FailedSupplierIDs = append(result.FailedSupplierIDs, supplierID)
			continue
		}
		result.Created = append(result.Created, order)
	}

	m.list.clearDayLocked(day)

	return result, nil
}

// createForSupplier runs steps 3-4 of the materialization for one
// supplier partition: snapshot items with the current cost, then submit
// one create-request. The order date is the materialization date, not
// the entries' AddedAt.
func (m *Materializer) createForSupplier(ctx context.Context, supplierID, createdByID string, slice []Entry, storeID int64) (*domain.PurchaseOrder, error) {
	items := make([]domain.PurchaseOrderItem, 0, len(slice))
	for _, e := range slice {
		cost, err := m.costs.ProductCost(ctx, e.Product.ID)
		if err != nil {
			return nil, &OrderCreationError{SupplierID: supplierID, Err: err}
		}
		items = append(items, domain.PurchaseOrderItem{
			ProductID:        e.Product.ID,
			ProductName:      e.Product.Name,
			Barcode:          e.Product.Barcode,
			Quantity:         e.Quantity,
			CostPriceAtOrder: cost,
			IsReceived:       false,
		})
	}

	order, err := m.orders.CreateOrder(ctx, domain.PurchaseOrderCreate{
		OrderDate:   domain.DayOf(m.Now()),
		SupplierID:  supplierID,
		StoreID:     storeID,
		CreatedByID: createdByID,
		Items:       items,
	})
	if err != nil {
		return nil, &OrderCreationError{SupplierID: supplierID, Err: err}
	}

	return order, nil
}
