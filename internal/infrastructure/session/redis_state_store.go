package session

import (
	"context"
	"fmt"
	"time"

	"storefront-gateway/internal/ports"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth_state:"

// RedisStateStore holds OAuth state nonces in redis with a bounded TTL, so an
// abandoned authorization attempt expires on its own.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStateStore creates a state store with the given TTL.
func NewRedisStateStore(client *redis.Client, ttl time.Duration) ports.StateStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStateStore{client: client, ttl: ttl}
}

// Put binds a state nonce to a shop domain.
func (s *RedisStateStore) Put(ctx context.Context, state string, shop string) error {
	if err := s.client.Set(ctx, stateKeyPrefix+state, shop, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

// Take returns the shop bound to a state and deletes it. An unknown or
// expired state yields ("", nil).
func (s *RedisStateStore) Take(ctx context.Context, state string) (string, error) {
	shop, err := s.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read oauth state: %w", err)
	}
	return shop, nil
}
