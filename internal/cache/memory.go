package cache

import (
	"context"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"everypolitician/pkg/platform/sentinel"
)

const memoryBackend = "memory"

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process LRU with a global TTL. Per-entry TTLs
// shorter than the global one are honoured on read.
type MemoryStore struct {
	lru     *expirable.LRU[string, memoryEntry]
	ttl     time.Duration
	now     func() time.Time
	metrics *Metrics
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryMetrics records hits and misses.
func WithMemoryMetrics(m *Metrics) MemoryOption {
	return func(s *MemoryStore) { s.metrics = m }
}

// WithClock overrides the clock used for per-entry expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore builds an LRU holding at most size entries, each evicted
// at the latest ttl after insertion.
func NewMemoryStore(size int, ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	if size <= 0 {
		size = 1024
	}
	s := &MemoryStore{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, ttl),
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := s.lru.Get(key)
	if !ok || (!entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt)) {
		if ok {
			s.lru.Remove(key)
		}
		s.metrics.miss(memoryBackend)
		return nil, sentinel.ErrNotFound
	}
	s.metrics.hit(memoryBackend)
	return slices.Clone(entry.value), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: slices.Clone(value)}
	if ttl > 0 && (s.ttl <= 0 || ttl < s.ttl) {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.lru.Add(key, entry)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
