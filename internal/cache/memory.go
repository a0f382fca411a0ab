// Package cache holds the in-process metadata cache used when no Redis
// server is configured.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bm/internal/domain"
)

type entry struct {
	meta      domain.PageMeta
	expiresAt time.Time
}

// Memory is a TTL map of URL to page metadata, safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an empty cache. A non-positive ttl never expires entries.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetMeta returns the cached metadata for url, if present and fresh.
func (m *Memory) GetMeta(_ context.Context, url string) (domain.PageMeta, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[url]
	if !ok {
		return domain.PageMeta{}, false, nil
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		return domain.PageMeta{}, false, nil
	}
	return e.meta, true, nil
}

// SetMeta adds or replaces the metadata for url.
func (m *Memory) SetMeta(_ context.Context, url string, meta domain.PageMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{meta: meta}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[url] = e
	return nil
}

