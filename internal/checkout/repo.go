package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trendora-io/storefront-backend/pkg/redis"
)

// DraftRepository persists checkout drafts keyed by session id.
type DraftRepository interface {
	Load(ctx context.Context, sessionID string) (*Draft, error)
	Save(ctx context.Context, sessionID string, d *Draft) error
	Delete(ctx context.Context, sessionID string) error
}

type redisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftRepository returns a Redis-backed draft repository. Drafts are
// short-lived by design; an abandoned checkout should not outlive its cart.
func NewDraftRepository(client *redis.Client, ttl time.Duration) (DraftRepository, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("draft ttl must be positive")
	}
	return &redisDraftRepository{client: client, ttl: ttl}, nil
}

// Load returns the session's draft, or a fresh one when none exists.
func (r *redisDraftRepository) Load(ctx context.Context, sessionID string) (*Draft, error) {
	raw, err := r.client.Get(ctx, r.client.DraftKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return NewDraft(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading checkout draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decoding checkout draft: %w", err)
	}
	if !d.Step.IsValid() {
		return NewDraft(), nil
	}
	return &d, nil
}

func (r *redisDraftRepository) Save(ctx context.Context, sessionID string, d *Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding checkout draft: %w", err)
	}
	if err := r.client.Set(ctx, r.client.DraftKey(sessionID), payload, r.ttl); err != nil {
		return fmt.Errorf("saving checkout draft: %w", err)
	}
	return nil
}

func (r *redisDraftRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.DraftKey(sessionID)); err != nil {
		return fmt.Errorf("deleting checkout draft: %w", err)
	}
	return nil
}
