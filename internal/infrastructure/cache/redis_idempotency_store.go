package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "crm:idempotency:"

// pendingValue marks a key that is reserved but not yet bound to a resource.
const pendingValue = ""

// RedisIdempotencyStore implements IdempotencyStore on Redis so that several
// API instances share the same key space.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore connects to addr and verifies the connection
func NewRedisIdempotencyStore(ctx context.Context, addr, password string, db int) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisIdempotencyStoreWithClient(client, ""), nil
}

// NewRedisIdempotencyStoreWithClient wraps an existing client
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisIdempotencyStore{client: client, keyPrefix: keyPrefix}
}

// Reserve claims key with SET NX so only one request wins
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, pendingValue, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

// Bind stores the created resource id under key
func (s *RedisIdempotencyStore) Bind(ctx context.Context, key, resourceID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, resourceID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to bind idempotency key: %w", err)
	}
	return nil
}

// Lookup returns the resource id bound to key
func (s *RedisIdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return value, true, nil
}

// Release deletes the key
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable
func (s *RedisIdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
