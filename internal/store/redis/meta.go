package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/bm/internal/domain"
)

// DefaultMetaTTL is the default TTL for cached page metadata (24 hours)
const DefaultMetaTTL = 24 * time.Hour

// Store caches fetched page metadata in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis metadata store. A non-positive ttl uses
// DefaultMetaTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultMetaTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// GetMeta retrieves cached metadata. A miss returns ok=false and no error.
func (s *Store) GetMeta(ctx context.Context, url string) (domain.PageMeta, bool, error) {
	data, err := s.client.Get(ctx, MetaKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PageMeta{}, false, nil
		}
		return domain.PageMeta{}, false, fmt.Errorf("failed to get cached metadata: %w", err)
	}

	var meta domain.PageMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.PageMeta{}, false, fmt.Errorf("failed to unmarshal cached metadata: %w", err)
	}
	return meta, true, nil
}

// SetMeta stores metadata for url with the store TTL.
func (s *Store) SetMeta(ctx context.Context, url string, meta domain.PageMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := s.client.Set(ctx, MetaKey(url), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metadata: %w", err)
	}
	return nil
}
