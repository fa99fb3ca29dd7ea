package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	allOrdersCacheKey = "all_orders"
	cacheRefreshEvery = 5 * time.Minute
)

// CacheRefresher keeps the all-orders view warm so admin reads rarely hit
// Mongo cold.
type CacheRefresher struct {
	orders OrderRepository
	redis  *redis.Client
}

func NewCacheRefresher(orders OrderRepository, rdb *redis.Client) *CacheRefresher {
	return &CacheRefresher{orders: orders, redis: rdb}
}

// Start rewarms the cache on a fixed interval until the context ends.
func (cr *CacheRefresher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cacheRefreshEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cr.refresh(ctx)
			case <-ctx.Done():
				log.Println("[CACHE] Refresher stopped")
				return
			}
		}
	}()
}

func (cr *CacheRefresher) refresh(ctx context.Context) {
	orders, err := cr.orders.GetAll(ctx)
	if err != nil {
		log.Printf("[CACHE] all_orders reload failed: %v", err)
		return
	}

	data, err := json.Marshal(orders)
	if err != nil {
		log.Printf("[CACHE] all_orders marshal failed: %v", err)
		return
	}

	// TTL outlives the refresh interval so the key never expires between runs
	if err := cr.redis.Set(ctx, allOrdersCacheKey, data, 2*cacheRefreshEvery).Err(); err != nil {
		log.Printf("[CACHE] all_orders write failed: %v", err)
	}
}
