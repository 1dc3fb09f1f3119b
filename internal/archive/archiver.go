// Package archive writes JSON snapshots of created purchase orders to
// object storage. The archive is an audit copy: uploads are best-effort
// and never fail a checkout.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/storage"
)

type OrderArchiver struct {
	store storage.ObjectStorage
}

type noopArchiver struct{}

// Archiver is satisfied by OrderArchiver and the noop used when object
// storage is disabled.
type Archiver interface {
	ArchiveOrders(ctx context.Context, orders []*domain.PurchaseOrder)
}

func NewOrderArchiver(store storage.ObjectStorage) *OrderArchiver {
	return &OrderArchiver{store: store}
}

func NewNoopArchiver() Archiver {
	return &noopArchiver{}
}

// ArchiveOrders uploads one snapshot per order. Failures are logged and
// skipped; the orders are already durable in the order store.
func (a *OrderArchiver) ArchiveOrders(ctx context.Context, orders []*domain.PurchaseOrder) {
	for _, order := range orders {
		if err := a.archiveOne(ctx, order); err != nil {
			log.Warn().Err(err).Int64("order_id", order.ID).Msg("order archive upload failed")
		}
	}
}

func (a *OrderArchiver) archiveOne(ctx context.Context, order *domain.PurchaseOrder) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %d: %w", order.ID, err)
	}

	key := archiveKey(order)

	uploadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.store.UploadObject(uploadCtx, key, payload); err != nil {
		return err
	}

	log.Debug().Int64("order_id", order.ID).Str("key", key).Msg("order archived")
	return nil
}

func archiveKey(order *domain.PurchaseOrder) string {
	return fmt.Sprintf("orders/%s/po_%d_%s.json", order.OrderDate, order.ID, order.SupplierID)
}

func (a *noopArchiver) ArchiveOrders(context.Context, []*domain.PurchaseOrder) {}
