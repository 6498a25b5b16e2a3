// Package cache stores raw upstream responses so repeated page views do
// not refetch the same entity, adjacency page or static file.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented cache. Get returns sentinel.ErrNotFound on a
// miss or an expired entry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
