package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"everypolitician/pkg/platform/sentinel"
)

// =============================================================================
// Memory Store Test Suite
// =============================================================================
// Justification for unit tests: expiry is split between the LRU's global TTL
// and per-entry deadlines. Tests pin both paths plus copy-on-read so callers
// cannot corrupt cached upstream bodies.

type MemoryStoreSuite struct {
	suite.Suite
	now     time.Time
	metrics *Metrics
	store   *MemoryStore
	ctx     context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.store = NewMemoryStore(2, time.Hour,
		WithClock(func() time.Time { return s.now }),
		WithMemoryMetrics(s.metrics),
	)
}

func (s *MemoryStoreSuite) TestMissReturnsNotFound() {
	_, err := s.store.Get(s.ctx, "entity:Q1")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Lookups.WithLabelValues(memoryBackend, "miss")))
}

func (s *MemoryStoreSuite) TestRoundTrip() {
	s.Require().NoError(s.store.Set(s.ctx, "entity:Q1", []byte(`{"id":"Q1"}`), 0))

	got, err := s.store.Get(s.ctx, "entity:Q1")
	s.Require().NoError(err)
	s.JSONEq(`{"id":"Q1"}`, string(got))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Lookups.WithLabelValues(memoryBackend, "hit")))
}

func (s *MemoryStoreSuite) TestValuesAreCopied() {
	in := []byte("abc")
	s.Require().NoError(s.store.Set(s.ctx, "k", in, 0))
	in[0] = 'x'

	out, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal("abc", string(out))
	out[0] = 'y'

	again, _ := s.store.Get(s.ctx, "k")
	s.Equal("abc", string(again))
}

func (s *MemoryStoreSuite) TestShortEntryTTLExpires() {
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte("v"), time.Minute))

	s.now = s.now.Add(59 * time.Second)
	_, err := s.store.Get(s.ctx, "k")
	s.NoError(err)

	s.now = s.now.Add(time.Second)
	_, err = s.store.Get(s.ctx, "k")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Equal(0, s.store.Len(), "expired entry is evicted on read")
}

func (s *MemoryStoreSuite) TestLeastRecentlyUsedIsEvicted() {
	s.Require().NoError(s.store.Set(s.ctx, "a", []byte("1"), 0))
	s.Require().NoError(s.store.Set(s.ctx, "b", []byte("2"), 0))
	_, _ = s.store.Get(s.ctx, "a")
	s.Require().NoError(s.store.Set(s.ctx, "c", []byte("3"), 0))

	_, err := s.store.Get(s.ctx, "b")
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.Get(s.ctx, "a")
	s.NoError(err)
}

func (s *MemoryStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte("v"), 0))
	s.Require().NoError(s.store.Delete(s.ctx, "k"))
	_, err := s.store.Get(s.ctx, "k")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func TestMemoryStoreWithoutMetrics(t *testing.T) {
	store := NewMemoryStore(0, 0)
	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), 0))
	got, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
