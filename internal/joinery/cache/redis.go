package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "qc:"

// RedisStore is the shared cache backend, used when several service
// instances must observe the same invalidations. Entries carry a TTL as a
// safety net; invalidation is still the primary eviction path.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps a redis client as a query cache
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key Key) ([]byte, bool) {
	b, err := r.rdb.Get(ctx, redisKeyPrefix+key.String()).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *RedisStore) Set(ctx context.Context, key Key, value []byte) {
	r.rdb.Set(ctx, redisKeyPrefix+key.String(), value, r.ttl)
}

func (r *RedisStore) Invalidate(ctx context.Context, entity string) {
	// Key strings always start with "entity<sep>", so the prefix match
	// cannot cross entity tags.
	pattern := redisKeyPrefix + entity + keySep + "*"
	iter := r.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		r.rdb.Del(ctx, iter.Val())
	}
}
