package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arvella/stockroom/internal/config"
	"github.com/arvella/stockroom/internal/domain"
)

const (
	suggestionKeyPrefix     = "reorder:suggestions"
	suggestionScanBatchSize = 100
)

// SuggestionCache holds per-store below-minimum reorder suggestions.
// The suggestion query joins the whole ledger, so the result is cached
// for a short TTL and flushed whenever intake lands new stock.
type SuggestionCache interface {
	Get(ctx context.Context, storeID int64) ([]domain.ReorderSuggestion, bool, error)
	Set(ctx context.Context, storeID int64, suggestions []domain.ReorderSuggestion) error
	Invalidate(ctx context.Context, storeID int64) error
	InvalidateAll(ctx context.Context) error
}

type redisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSuggestionCache struct{}

func NewSuggestionCache(cfg config.CacheConfig) (SuggestionCache, error) {
	if !cfg.Enabled {
		return &noopSuggestionCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSuggestionCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSuggestionCache() SuggestionCache {
	return &noopSuggestionCache{}
}

func (c *redisSuggestionCache) Get(ctx context.Context, storeID int64) ([]domain.ReorderSuggestion, bool, error) {
	key := suggestionKey(storeID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var suggestions []domain.ReorderSuggestion
	if err := json.Unmarshal(payload, &suggestions); err != nil {
		return nil, false, fmt.Errorf("decode reorder suggestion cache: %w", err)
	}

	return suggestions, true, nil
}

func (c *redisSuggestionCache) Set(ctx context.Context, storeID int64, suggestions []domain.ReorderSuggestion) error {
	payload, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("encode reorder suggestion cache: %w", err)
	}

	if err := c.client.Set(ctx, suggestionKey(storeID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSuggestionCache) Invalidate(ctx context.Context, storeID int64) error {
	if err := c.client.Del(ctx, suggestionKey(storeID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (c *redisSuggestionCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, suggestionKeyPrefix, suggestionScanBatchSize)
}

func suggestionKey(storeID int64) string {
	return suggestionKeyPrefix + ":" + strconv.FormatInt(storeID, 10)
}

func (c *noopSuggestionCache) Get(context.Context, int64) ([]domain.ReorderSuggestion, bool, error) {
	return nil, false, nil
}

func (c *noopSuggestionCache) Set(context.Context, int64, []domain.ReorderSuggestion) error {
	return nil
}

func (c *noopSuggestionCache) Invalidate(context.Context, int64) error {
	return nil
}

func (c *noopSuggestionCache) InvalidateAll(context.Context) error {
	return nil
}
