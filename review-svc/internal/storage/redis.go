package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMarkers remembers idempotency keys of create requests for TTL.
type RedisMarkers struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMarkers(client *redis.Client, ttl time.Duration) *RedisMarkers {
	return &RedisMarkers{Client: client, TTL: ttl}
}

func (m *RedisMarkers) MarkerKey(scope, actorID, key string) string {
	return "submission:" + scope + ":" + actorID + ":" + key
}

// Claim reports true when key was not seen before and is now taken.
func (m *RedisMarkers) Claim(ctx context.Context, key string) (bool, error) {
	return m.Client.SetNX(ctx, key, "1", m.TTL).Result()
}

func (m *RedisMarkers) Release(ctx context.Context, key string) error {
	return m.Client.Del(ctx, key).Err()
}
