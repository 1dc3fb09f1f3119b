package service

import (
	"context"
	"fmt"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/repository"
)

// OrderService reads the durable order store. Orders reach it only
// through materialization; the service itself never builds one.
type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, storeID int64, statusLabel string, limit, offset int) ([]*domain.PurchaseOrder, error) {
	var status *int
	if statusLabel != "" {
		code, ok := domain.ParseOrderStatus(statusLabel)
		if !ok {
			return nil, fmt.Errorf("unknown order status %q", statusLabel)
		}
		status = &code
	}

	return s.orders.ListOrders(ctx, storeID, status, limit, offset)
}

// UpdateStatus moves an order through its lifecycle; called by the
// receiving flow. Items stay immutable.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, statusLabel string) error {
	code, ok := domain.ParseOrderStatus(statusLabel)
	if !ok {
		return fmt.Errorf("unknown order status %q", statusLabel)
	}

	return s.orders.UpdateOrderStatus(ctx, id, code)
}
