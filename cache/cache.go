// Package cache memoizes aggregation output for a short TTL.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"pricescout/search"
)

// DefaultTTL is how long a cached result stays fresh.
const DefaultTTL = 5 * time.Minute

// Store is a result cache keyed by Key(category, term). Concurrent
// writes to the same key may race; last write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]search.ScoredItem, bool)
	Set(ctx context.Context, key string, items []search.ScoredItem) error
}

// Key builds the cache key. Lower-casing and trimming the term is
// load-bearing: requests differing only in case or surrounding
// whitespace must hit the same entry.
func Key(category, term string) string {
	return category + ":" + strings.ToLower(strings.TrimSpace(term))
}

type entry struct {
	items     []search.ScoredItem
	createdAt time.Time
}

// Memory is an in-process Store. Entries are never purged; staleness
// is checked on read and stale entries are superseded by the next
// write. Unbounded growth is accepted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewMemoryWithClock injects the clock, for expiry tests.
func NewMemoryWithClock(ttl time.Duration, now func() time.Time) *Memory {
	m := NewMemory(ttl)
	m.now = now
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]search.ScoredItem, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.createdAt) >= m.ttl {
		return nil, false
	}
	return e.items, true
}

func (m *Memory) Set(_ context.Context, key string, items []search.ScoredItem) error {
	m.mu.Lock()
	m.entries[key] = entry{items: items, createdAt: m.now()}
	m.mu.Unlock()
	return nil
}
