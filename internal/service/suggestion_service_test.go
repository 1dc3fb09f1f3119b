package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/repository"
)

type stubInventory struct {
	stock       map[string]int
	suggestions []domain.ReorderSuggestion
	calls       int
}

func (i *stubInventory) CurrentStock(_ context.Context, productID string, _ int64) (int, error) {
	stock, ok := i.stock[productID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return stock, nil
}

func (i *stubInventory) BelowMinimum(context.Context, int64) ([]domain.ReorderSuggestion, error) {
	i.calls++
	return i.suggestions, nil
}

// mapCache is an in-memory SuggestionCache for tests.
type mapCache struct {
	data map[int64][]domain.ReorderSuggestion
	err  error
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[int64][]domain.ReorderSuggestion)}
}

func (c *mapCache) Get(_ context.Context, storeID int64) ([]domain.ReorderSuggestion, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	s, ok := c.data[storeID]
	return s, ok, nil
}

func (c *mapCache) Set(_ context.Context, storeID int64, s []domain.ReorderSuggestion) error {
	if c.err != nil {
		return c.err
	}
	c.data[storeID] = s
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, storeID int64) error {
	delete(c.data, storeID)
	return nil
}

func (c *mapCache) InvalidateAll(context.Context) error {
	c.data = make(map[int64][]domain.ReorderSuggestion)
	return nil
}

func TestSuggestionsCachesPerStore(t *testing.T) {
	inv := &stubInventory{suggestions: []domain.ReorderSuggestion{
		{StoreID: 1, CurrentStock: 1, MinimumStock: 5, Deficit: 4},
	}}
	svc := NewSuggestionService(inv, newMapCache())
	ctx := context.Background()

	first, err := svc.Suggestions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Suggestions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inv.calls, "second read must come from the cache")
}

func TestSuggestionsDegradesOnCacheFailure(t *testing.T) {
	inv := &stubInventory{suggestions: []domain.ReorderSuggestion{
		{StoreID: 1, Deficit: 2},
	}}
	broken := newMapCache()
	broken.err = errors.New("redis down")
	svc := NewSuggestionService(inv, broken)

	got, err := svc.Suggestions(context.Background(), 1)
	require.NoError(t, err, "cache failure must not fail the read")
	assert.Len(t, got, 1)
}

func TestInvalidateForcesReload(t *testing.T) {
	inv := &stubInventory{}
	svc := NewSuggestionService(inv, newMapCache())
	ctx := context.Background()

	_, err := svc.Suggestions(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, 1))
	_, err = svc.Suggestions(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, inv.calls)
}

func TestStockOnHand(t *testing.T) {
	inv := &stubInventory{stock: map[string]int{"p1": 7}}
	svc := NewSuggestionService(inv, newMapCache())

	stock, err := svc.StockOnHand(context.Background(), "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)

	_, err = svc.StockOnHand(context.Background(), "p9", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
