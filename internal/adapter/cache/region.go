package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sesi-membership/internal/domain/region"

	"github.com/redis/go-redis/v9"
)

const (
	statesKey       = "ref:states"
	districtsPrefix = "ref:districts:"
)

// RegionCache keeps reference lists as JSON blobs in Redis.
type RegionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRegionCache(rdb *redis.Client, ttl time.Duration) *RegionCache {
	return &RegionCache{rdb: rdb, ttl: ttl}
}

func (c *RegionCache) GetStates(ctx context.Context) ([]region.State, bool, error) {
	var out []region.State
	ok, err := c.get(ctx, statesKey, &out)
	return out, ok, err
}

func (c *RegionCache) SetStates(ctx context.Context, states []region.State) error {
	return c.set(ctx, statesKey, states)
}

func (c *RegionCache) GetDistricts(ctx context.Context, stateID string) ([]region.District, bool, error) {
	var out []region.District
	ok, err := c.get(ctx, districtsPrefix+stateID, &out)
	return out, ok, err
}

func (c *RegionCache) SetDistricts(ctx context.Context, stateID string, districts []region.District) error {
	return c.set(ctx, districtsPrefix+stateID, districts)
}

// Invalidate drops every cached reference list.
func (c *RegionCache) Invalidate(ctx context.Context) error {
	keys := []string{statesKey}
	iter := c.rdb.Scan(ctx, 0, districtsPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *RegionCache) get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RegionCache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}
