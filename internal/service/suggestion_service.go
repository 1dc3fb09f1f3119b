package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/arvella/stockroom/internal/cache"
	"github.com/arvella/stockroom/internal/domain"
	"github.com/arvella/stockroom/internal/repository"
)

// SuggestionService surfaces below-minimum stock as reorder candidates
// for the purchase-list screens. Read-only over the ledger.
type SuggestionService struct {
	inventory repository.InventoryRepository
	cache     cache.SuggestionCache
}

func NewSuggestionService(inventory repository.InventoryRepository, suggestionCache cache.SuggestionCache) *SuggestionService {
	return &SuggestionService{
		inventory: inventory,
		cache:     suggestionCache,
	}
}

// Suggestions returns the store's below-minimum products, worst deficit
// first. Served from cache when warm; cache failures degrade to a
// direct ledger read.
func (s *SuggestionService) Suggestions(ctx context.Context, storeID int64) ([]domain.ReorderSuggestion, error) {
	cached, hit, err := s.cache.Get(ctx, storeID)
	if err != nil {
		log.Warn().Err(err).Int64("store_id", storeID).Msg("suggestion cache read failed")
	} else if hit {
		return cached, nil
	}

	suggestions, err := s.inventory.BelowMinimum(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reorder suggestions: %w", err)
	}

	if err := s.cache.Set(ctx, storeID, suggestions); err != nil {
		log.Warn().Err(err).Int64("store_id", storeID).Msg("suggestion cache write failed")
	}

	return suggestions, nil
}

// StockOnHand reads the ledger's current stock for one product, a
// display hint next to cart entries.
func (s *SuggestionService) StockOnHand(ctx context.Context, productID string, storeID int64) (int, error) {
	return s.inventory.CurrentStock(ctx, productID, storeID)
}

// Invalidate flushes the store's cached suggestions, e.g. after intake
// lands new stock.
func (s *SuggestionService) Invalidate(ctx context.Context, storeID int64) error {
	return s.cache.Invalidate(ctx, storeID)
}

// InvalidateAll flushes every store's cached suggestions.
func (s *SuggestionService) InvalidateAll(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
