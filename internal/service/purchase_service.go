package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arvella/stockroom/internal/archive"
	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/purchaselist"
	"github.com/arvella/stockroom/internal/repository"
)

// PurchaseService owns the per-session purchase lists and drives
// materialization. Each session gets an isolated cart; carts live in
// process memory for the session's lifetime only and are never
// persisted.
type PurchaseService struct {
	catalog  repository.CatalogRepository
	orders   repository.OrderRepository
	archiver archive.Archiver

	mu    sync.Mutex
	carts map[string]*cartSession

	// Now supplies "today" for add and materialize. Override in tests.
	Now func() time.Time
}

type cartSession struct {
	list *purchaselist.List
	mat  *purchaselist.Materializer
}

func NewPurchaseService(catalog repository.CatalogRepository, orders repository.OrderRepository, archiver archive.Archiver) *PurchaseService {
	return &PurchaseService{
		catalog:  catalog,
		orders:   orders,
		archiver: archiver,
		carts:    make(map[string]*cartSession),
		Now:      time.Now,
	}
}

// NewSessionID mints an opaque id for a fresh cart session.
func (s *PurchaseService) NewSessionID() string {
	return uuid.NewString()
}

func (s *PurchaseService) session(sessionID string) *cartSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.carts[sessionID]
	if !ok {
		list := purchaselist.New()
		mat := purchaselist.NewMaterializer(list, s.orders, s.catalog)
		mat.Now = func() time.Time { return s.Now() }
		cs = &cartSession{list: list, mat: mat}
		s.carts[sessionID] = cs
	}
	return cs
}

// EndSession discards a session's cart.
func (s *PurchaseService) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// AddItem resolves the product and puts quantity units on the session's
// cart under today's date. Same-day adds of the same product merge.
func (s *PurchaseService) AddItem(ctx context.Context, sessionID, productID string, quantity int) error {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to resolve product %s: %w", productID, err)
	}

	s.session(sessionID).list.Add(*product, quantity, domain.DayOf(s.Now()))
	return nil
}

func (s *PurchaseService) RemoveItem(sessionID, productID string, day domain.Day) {
	s.session(sessionID).list.Remove(productID, day)
}

func (s *PurchaseService) UpdateQuantity(sessionID, productID string, day domain.Day, quantity int) {
	s.session(sessionID).list.UpdateQuantity(productID, day, quantity)
}

func (s *PurchaseService) CartEntries(sessionID string) []purchaselist.Entry {
	return s.session(sessionID).list.Entries()
}

func (s *PurchaseService) CartEntriesForSupplier(sessionID, supplierID string) []purchaselist.Entry {
	return s.session(sessionID).list.EntriesForSupplier(supplierID)
}

// CartCount is the number of distinct entries, for UI badges.
func (s *PurchaseService) CartCount(sessionID string) int {
	return s.session(sessionID).list.Len()
}

// CheckoutSupplier materializes the (supplier, day) cart slice into one
// purchase order. The created order is archived best-effort in the
// background.
func (s *PurchaseService) CheckoutSupplier(ctx context.Context, sessionID, supplierID, createdByID string, day domain.Day, storeID int64) (*domain.PurchaseOrder, error) {
	order, err := s.session(sessionID).mat.MaterializeForSupplier(ctx, supplierID, createdByID, day, storeID)
	if err != nil {
		return nil, err
	}

	go s.archiver.ArchiveOrders(context.Background(), []*domain.PurchaseOrder{order})

	return order, nil
}

// CheckoutAll materializes every orderable entry of the day, one order
// per supplier. Partitions fail independently; the result carries both
// created orders and failed supplier ids, and the cart's date slice is
// cleared either way. Callers must surface partial completion to the
// user, who re-adds failed items by hand.
func (s *PurchaseService) CheckoutAll(ctx context.Context, sessionID, createdByID string, day domain.Day, storeID int64) (*purchaselist.Result, error) {
	result, err := s.session(sessionID).mat.MaterializeAllForDate(ctx, createdByID, day, storeID)
	if err != nil {
		return nil, err
	}

	if len(result.Created) > 0 {
		go s.archiver.ArchiveOrders(context.Background(), result.Created)
	}

	return result, nil
}
