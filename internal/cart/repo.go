package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trendora-io/storefront-backend/pkg/redis"
)

// Repository persists carts keyed by session id.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepository returns a Redis-backed cart repository. Every save refreshes
// the TTL, so a cart expires only after the session goes idle for the full
// window.
func NewRepository(client *redis.Client, ttl time.Duration) (Repository, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("cart ttl must be positive")
	}
	return &redisRepository{client: client, ttl: ttl}, nil
}

// Load returns the session's cart. A missing key yields a fresh empty cart
// rather than an error; the caller cannot tell an expired cart from one that
// never existed, and should not need to.
func (r *redisRepository) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return &c, nil
}

func (r *redisRepository) Save(ctx context.Context, sessionID string, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := r.client.Set(ctx, r.client.CartKey(sessionID), payload, r.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.CartKey(sessionID)); err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	return nil
}
