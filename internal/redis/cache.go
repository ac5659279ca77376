package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles short-lived caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants.
const (
	// PickupCacheTTL is short because status changes during the admin
	// approve/assign flow.
	PickupCacheTTL = 10 * time.Second

	// StatsCacheTTL bounds how stale the dashboard counters can be.
	StatsCacheTTL = 30 * time.Second
)

const (
	pickupCachePrefix = "cache:pickup:"
	statsCacheKey     = "cache:stats"
)

// CachedPickup holds the hot fields of a pickup request. The waste image is
// deliberately excluded; it can be megabytes of base64.
type CachedPickup struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	WasteType     string  `json:"waste_type"`
	Quantity      string  `json:"quantity"`
	DistanceKm    float64 `json:"distance_km"`
	EstimatedCost float64 `json:"estimated_cost"`
	DriverID      string  `json:"driver_id"`
}

// GetPickup retrieves a pickup from cache. Returns nil on a miss.
func (s *CacheStore) GetPickup(ctx context.Context, pickupID string) (*CachedPickup, error) {
	data, err := s.client.Get(ctx, pickupCachePrefix+pickupID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var pickup CachedPickup
	if err := json.Unmarshal(data, &pickup); err != nil {
		return nil, err
	}
	return &pickup, nil
}

// SetPickup stores a pickup in cache.
func (s *CacheStore) SetPickup(ctx context.Context, pickup *CachedPickup) error {
	data, err := json.Marshal(pickup)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, pickupCachePrefix+pickup.ID, data, PickupCacheTTL).Err()
}

// InvalidatePickup removes a pickup from cache after an update.
func (s *CacheStore) InvalidatePickup(ctx context.Context, pickupID string) error {
	return s.client.Del(ctx, pickupCachePrefix+pickupID).Err()
}

// GetStats retrieves cached dashboard counters. Returns nil on a miss.
func (s *CacheStore) GetStats(ctx context.Context) (map[string]int, error) {
	data, err := s.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats map[string]int
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// SetStats stores dashboard counters in cache.
func (s *CacheStore) SetStats(ctx context.Context, stats map[string]int) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsCacheKey, data, StatsCacheTTL).Err()
}
