package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lamsashop/lamsa/internal/domain"
)

// RedisStore keeps carts in Redis so they survive restarts and are shared
// across instances. Carts are stored as JSON under a per-session key with
// the standard TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed cart store and verifies
// connectivity before returning.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

var _ Store = (*RedisStore)(nil)

func cartKey(token string) string {
	return "cart:" + token
}

// Get loads the cart for a session token.
func (s *RedisStore) Get(ctx context.Context, token string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c domain.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

// Save writes the cart back and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, token string, c *domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(token), data, TTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete drops the cart.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, cartKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
