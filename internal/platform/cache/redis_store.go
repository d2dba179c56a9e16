// Package cache provides key-value stores backing the quote cache.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"quote_backend/internal/feature/quotes/usecase"
)

// RedisStore is a CacheStore on top of Redis. Expiry is delegated to Redis.
type RedisStore struct {
	rdb       redis.Cmdable
	namespace string
}

var _ usecase.CacheStore = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. A non-empty namespace is prepended to
// every key as "<namespace>:".
func NewRedisStore(rdb redis.Cmdable, namespace string) *RedisStore {
	return &RedisStore{rdb: rdb, namespace: namespace}
}

// Get returns the value stored at key. A missing key is not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value at key for ttl.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(key), value, ttl).Err()
}

// Delete removes the given keys. Missing keys are ignored.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	return s.rdb.Del(ctx, full...).Err()
}

// DeleteByPrefix deletes every key starting with prefix using SCAN, so large
// keyspaces are not blocked.
func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, s.key(prefix)+"*", 200).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(keys)
		}
		cursor = cur
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (s *RedisStore) key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}
