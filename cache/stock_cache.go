package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StockCache keeps short-lived free-stock snapshots so material listings
// don't hit Postgres on every poll. It is strictly best-effort: every miss
// or Redis failure falls through to the store, and mutations just drop the
// key. A nil cache (tests) is a permanent miss.
type StockCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStockCache(rdb *redis.Client, ttl time.Duration) *StockCache {
	return &StockCache{rdb: rdb, ttl: ttl}
}

type StockSnapshot struct {
	CurrentStock  float64 `json:"current"`
	ReservedStock float64 `json:"reserved"`
	FreeStock     float64 `json:"free"`
	CachedAt      int64   `json:"at"`
}

func stockKey(materialID string) string { return fmt.Sprintf("stock:free:%s", materialID) }

func (c *StockCache) Get(ctx context.Context, materialID string) (*StockSnapshot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, stockKey(materialID)).Bytes()
	if err != nil {
		return nil, false
	}
	var s StockSnapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (c *StockCache) Set(ctx context.Context, materialID string, current, reserved float64) {
	if c == nil || c.rdb == nil {
		return
	}
	b, _ := json.Marshal(StockSnapshot{
		CurrentStock:  current,
		ReservedStock: reserved,
		FreeStock:     current - reserved,
		CachedAt:      time.Now().Unix(),
	})
	_ = c.rdb.Set(ctx, stockKey(materialID), b, c.ttl).Err()
}

// Invalidate drops the snapshot after any allocation or stock mutation.
func (c *StockCache) Invalidate(ctx context.Context, materialID string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, stockKey(materialID)).Err()
}
