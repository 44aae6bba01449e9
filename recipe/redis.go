package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	redisKeyPrefix = "recipe:"
	redisIndexKey  = "recipes:index"
)

// redisClient is the subset of *redis.Client used by RedisCache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	ZAdd(ctx context.Context, key string, members ...*redis.Z) *redis.IntCmd
	ZRevRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisCache stores recipes as JSON under recipe:<name>, with a sorted set
// indexing names by the time they were stored.
type RedisCache struct {
	client redisClient
	ttl    time.Duration
	now    func() time.Time
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client redisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, now: time.Now}
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisCache) Put(ctx context.Context, r Recipe) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	key := cacheKey(r.Name)
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recipe %q: %w", r.Name, err)
	}
	member := &redis.Z{Score: float64(c.now().UnixNano()), Member: key}
	if err := c.client.ZAdd(ctx, redisIndexKey, member).Err(); err != nil {
		return fmt.Errorf("failed to index recipe %q: %w", r.Name, err)
	}
	return nil
}

func (c *RedisCache) Recipe(ctx context.Context, name string) (Recipe, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+cacheKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Recipe{}, false, nil
	}
	if err != nil {
		return Recipe{}, false, fmt.Errorf("failed to get recipe %q: %w", name, err)
	}

	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return Recipe{}, false, fmt.Errorf("failed to unmarshal recipe %q: %w", name, err)
	}
	return r, true, nil
}

// Names skips indexed recipes whose entry has expired.
func (c *RedisCache) Names(ctx context.Context) ([]string, error) {
	keys, err := c.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		r, ok, err := c.Recipe(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, r.Name)
		}
	}
	return names, nil
}
