package purchaselist

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvella/stockroom/internal/domain"
)

// stubOrderStore records create-requests and can be told to reject
// specific suppliers.
type stubOrderStore struct {
	requests []domain.PurchaseOrderCreate
	failFor  map[string]error
	nextID   int64
}

func newStubOrderStore() *stubOrderStore {
	return &stubOrderStore{failFor: make(map[string]error)}
}

func (s *stubOrderStore) CreateOrder(_ context.Context, req domain.PurchaseOrderCreate) (*domain.PurchaseOrder, error) {
	if err, ok := s.failFor[req.SupplierID]; ok {
		return nil, err
	}
	s.requests = append(s.requests, req)
	s.nextID++

	order := &domain.PurchaseOrder{
		ID:          s.nextID,
		OrderDate:   req.OrderDate,
		SupplierID:  req.SupplierID,
		StoreID:     req.StoreID,
		CreatedByID: req.CreatedByID,
		Status:      domain.StatusOrdered,
		Items:       req.Items,
	}
	return order, nil
}

// stubCosts serves per-product costs, defaulting to 10.
type stubCosts struct {
	costs map[string]decimal.Decimal
	fail  error
}

func (s *stubCosts) ProductCost(_ context.Context, productID string) (decimal.Decimal, error) {
	if s.fail != nil {
		return decimal.Zero, s.fail
	}
	if c, ok := s.costs[productID]; ok {
		return c, nil
	}
	return decimal.NewFromInt(10), nil
}

func fixedClock(day string) func() time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(fmt.Sprintf("bad test day %q: %v", day, err))
	}
	return func() time.Time { return t }
}

func newTestMaterializer(l *List, store *stubOrderStore, costs *stubCosts) *Materializer {
	m := NewMaterializer(l, store, costs)
	m.Now = fixedClock("2024-06-10")
	return m
}

func TestMaterializeForSupplierCreatesOneOrder(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 3, day)
	l.Add(testProduct("p2", "s1"), 2, day)

	store := newStubOrderStore()
	costs := &stubCosts{costs: map[string]decimal.Decimal{"p1": decimal.NewFromFloat(12.5)}}
	m := newTestMaterializer(l, store, costs)

	order, err := m.MaterializeForSupplier(context.Background(), "s1", "user1", day, 7)
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, store.requests, 1)
	req := store.requests[0]
	assert.Equal(t, "s1", req.SupplierID)
	assert.Equal(t, int64(7), req.StoreID)
	assert.Equal(t, "user1", req.CreatedByID)
	require.Len(t, req.Items, 2)
	assert.Equal(t, "p1", req.Items[0].ProductID)
	assert.Equal(t, 3, req.Items[0].Quantity)
	assert.False(t, req.Items[0].IsReceived)
	assert.False(t, req.Items[1].IsReceived)

	assert.Equal(t, 0, l.Len(), "committed slice must be cleared")
}

func TestMaterializeStampsCurrentCostNotAddTimeCost(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	p := testProduct("p1", "s1")
	p.CostPrice = decimal.NewFromInt(8) // stale cart snapshot
	l.Add(p, 1, day)

	store := newStubOrderStore()
	costs := &stubCosts{costs: map[string]decimal.Decimal{"p1": decimal.NewFromInt(11)}}
	m := newTestMaterializer(l, store, costs)

	_, err := m.MaterializeForSupplier(context.Background(), "s1", "user1", day, 1)
	require.NoError(t, err)

	require.Len(t, store.requests, 1)
	assert.True(t, store.requests[0].Items[0].CostPriceAtOrder.Equal(decimal.NewFromInt(11)),
		"cost must come from the catalog at materialization time")
}

func TestMaterializeOrderDateIsMaterializationDay(t *testing.T) {
	l := New()
	cartDay := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 1, cartDay)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	order, err := m.MaterializeForSupplier(context.Background(), "s1", "user1", cartDay, 1)
	require.NoError(t, err)

	assert.Equal(t, domain.Day("2024-06-10"), order.OrderDate, "order date is today, not the cart day")
}

func TestMaterializeForSupplierClearsOnlyItsSlice(t *testing.T) {
	l := New()
	d1 := domain.Day("2024-06-01")
	d2 := domain.Day("2024-06-02")
	l.Add(testProduct("p1", "sA"), 1, d1)
	l.Add(testProduct("p2", "sB"), 1, d1)
	l.Add(testProduct("p3", "sA"), 1, d2)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	_, err := m.MaterializeForSupplier(context.Background(), "sA", "user1", d1, 1)
	require.NoError(t, err)

	remaining := l.Entries()
	require.Len(t, remaining, 2)
	assert.Equal(t, "p2", remaining[0].Product.ID)
	assert.Equal(t, "p3", remaining[1].Product.ID)
}

func TestMaterializeForSupplierRemovesZeroQuantityEntriesOfSlice(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 3, day)
	l.Add(testProduct("p2", "s1"), 2, day)
	l.UpdateQuantity("p2", day, 0)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	order, err := m.MaterializeForSupplier(context.Background(), "s1", "user1", day, 1)
	require.NoError(t, err)

	// excluded from the order...
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	// ...but swept out with the committed slice
	assert.Equal(t, 0, l.Len())
}

func TestMaterializeForSupplierEmptySliceFails(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 2, day)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	_, err := m.MaterializeForSupplier(context.Background(), "s2", "user1", day, 1)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = m.MaterializeForSupplier(context.Background(), "s1", "user1", domain.Day("2024-06-03"), 1)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	assert.Empty(t, store.requests)
	assert.Equal(t, 1, l.Len(), "cart must be untouched")
}

func TestMaterializeForSupplierAllZeroQuantityFailsAndKeepsEntry(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 1, day)
	l.UpdateQuantity("p1", day, 0)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	_, err := m.MaterializeForSupplier(context.Background(), "s1", "user1", day, 1)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	// no successful materialization, so the zero-quantity entry stays
	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Quantity)
}

func TestMaterializeForSupplierStoreFailureLeavesCartUnchanged(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 3, day)

	store := newStubOrderStore()
	store.failFor["s1"] = errors.New("connection refused")
	m := newTestMaterializer(l, store, &stubCosts{})

	_, err := m.MaterializeForSupplier(context.Background(), "s1", "user1", day, 1)

	var created *OrderCreationError
	require.ErrorAs(t, err, &created)
	assert.Equal(t, "s1", created.SupplierID)

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Quantity)
}

func TestMaterializeForSupplierCostLookupFailureLeavesCartUnchanged(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 3, day)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{fail: errors.New("catalog unavailable")})

	_, err := m.MaterializeForSupplier(context.Background(), "s1", "user1", day, 1)

	var created *OrderCreationError
	require.ErrorAs(t, err, &created)
	assert.Empty(t, store.requests)
	assert.Equal(t, 1, l.Len())
}

func TestMaterializeAllForDateOneOrderPerSupplier(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 3, day)
	l.Add(testProduct("p2", "s2"), 2, day)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	res, err := m.MaterializeAllForDate(context.Background(), "user1", day, 1)
	require.NoError(t, err)

	require.Len(t, res.Created, 2)
	assert.Empty(t, res.FailedSupplierIDs)

	assert.Equal(t, "s1", res.Created[0].SupplierID)
	require.Len(t, res.Created[0].Items, 1)
	assert.Equal(t, "p1", res.Created[0].Items[0].ProductID)
	assert.Equal(t, 3, res.Created[0].Items[0].Quantity)

	assert.Equal(t, "s2", res.Created[1].SupplierID)
	require.Len(t, res.Created[1].Items, 1)
	assert.Equal(t, "p2", res.Created[1].Items[0].ProductID)
	assert.Equal(t, 2, res.Created[1].Items[0].Quantity)

	assert.Equal(t, 0, l.Len(), "whole date slice cleared")
}

func TestMaterializeAllForDateKeepsOtherDays(t *testing.T) {
	l := New()
	d1 := domain.Day("2024-06-01")
	d2 := domain.Day("2024-06-05")
	l.Add(testProduct("p1", "s1"), 1, d1)
	l.Add(testProduct("p2", "s1"), 1, d2)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	_, err := m.MaterializeAllForDate(context.Background(), "user1", d1, 1)
	require.NoError(t, err)

	remaining := l.Entries()
	require.Len(t, remaining, 1)
	assert.Equal(t, d2, remaining[0].AddedAt)
}

func TestMaterializeAllForDateEmptyFails(t *testing.T) {
	l := New()
	l.Add(testProduct("p1", "s1"), 1, domain.Day("2024-06-01"))

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	_, err := m.MaterializeAllForDate(context.Background(), "user1", domain.Day("2024-06-02"), 1)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Equal(t, 1, l.Len())
}

func TestMaterializeAllForDatePartialFailure(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 3, day)
	l.Add(testProduct("p2", "s2"), 2, day)
	l.Add(testProduct("p3", "s3"), 1, day)

	store := newStubOrderStore()
	store.failFor["s2"] = errors.New("store rejected write")
	m := newTestMaterializer(l, store, &stubCosts{})

	res, err := m.MaterializeAllForDate(context.Background(), "user1", day, 1)
	require.NoError(t, err, "partial failure is a result, not an error")

	require.Len(t, res.Created, 2)
	assert.Equal(t, "s1", res.Created[0].SupplierID)
	assert.Equal(t, "s3", res.Created[1].SupplierID)
	assert.Equal(t, []string{"s2"}, res.FailedSupplierIDs)

	assert.Equal(t, 0, l.Len(), "date slice cleared even for the failed partition")
}

func TestMaterializeAllForDateGroupsPreserveCartOrder(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 1, day)
	l.Add(testProduct("p2", "s2"), 1, day)
	l.Add(testProduct("p3", "s1"), 1, day)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	res, err := m.MaterializeAllForDate(context.Background(), "user1", day, 1)
	require.NoError(t, err)

	require.Len(t, res.Created, 2)
	s1 := res.Created[0]
	require.Equal(t, "s1", s1.SupplierID)
	require.Len(t, s1.Items, 2)
	assert.Equal(t, "p1", s1.Items[0].ProductID)
	assert.Equal(t, "p3", s1.Items[1].ProductID)
}

func TestMaterializeAllForDateSkipsZeroQuantity(t *testing.T) {
	l := New()
	day := domain.Day("2024-06-01")
	l.Add(testProduct("p1", "s1"), 2, day)
	l.Add(testProduct("p2", "s2"), 2, day)
	l.UpdateQuantity("p2", day, 0)

	store := newStubOrderStore()
	m := newTestMaterializer(l, store, &stubCosts{})

	res, err := m.MaterializeAllForDate(context.Background(), "user1", day, 1)
	require.NoError(t, err)

	// s2's only entry was zero quantity: no partition for it at all
	require.Len(t, res.Created, 1)
	assert.Equal(t, "s1", res.Created[0].SupplierID)
	assert.Empty(t, res.FailedSupplierIDs)

	assert.Equal(t, 0, l.Len(), "zero-quantity entry swept with the date slice")
}
