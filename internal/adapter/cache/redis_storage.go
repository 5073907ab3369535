package cache

import (
	"context"
	"errors"
	"time"

	"github.com/aq2208/gstore-api/internal/storage"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the local storage keys in Redis under a per-client
// prefix, so a session survives process restarts.
type RedisStorage struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStorage(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisStorage) key(k string) string { return r.prefix + "ls:" + k }

func (r *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, r.key(key), value, r.ttl).Err()
}

func (r *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.key(key)).Err()
}

var _ storage.LocalStorage = (*RedisStorage)(nil)
