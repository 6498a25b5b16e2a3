package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"everypolitician/pkg/platform/sentinel"
)

const redisBackend = "redis"

// RedisStore shares cached responses between site instances.
type RedisStore struct {
	client  redis.UniversalClient
	prefix  string
	metrics *Metrics
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisMetrics records hits, misses and backend failures.
func WithRedisMetrics(m *Metrics) RedisOption {
	return func(s *RedisStore) { s.metrics = m }
}

// NewRedisStore constructs a Redis-backed store. Keys are namespaced with
// prefix; the client lifecycle is managed by the caller.
func NewRedisStore(client redis.UniversalClient, prefix string, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: prefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.metrics.miss(redisBackend)
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		s.metrics.failed(redisBackend, "get")
		return nil, fmt.Errorf("redis get %s: %w", key, errors.Join(sentinel.ErrUnavailable, err))
	}
	s.metrics.hit(redisBackend)
	return value, nil
}

// Set stores value with SET EX semantics. A zero ttl keeps the key forever.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		s.metrics.failed(redisBackend, "set")
		return fmt.Errorf("redis set %s: %w", key, errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.metrics.failed(redisBackend, "delete")
		return fmt.Errorf("redis delete %s: %w", key, errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
