package politics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/erni27/imcache"
	"golang.org/x/sync/singleflight"

	"everypolitician/internal/ftm"
	"everypolitician/internal/politics/metrics"
	"everypolitician/pkg/requestcontext"
)

const (
	modelKey = "model"
	// staleRetry spaces out rebuild attempts while the backend is failing.
	staleRetry = 30 * time.Second
)

// ModelSource builds the schema model once and rebuilds it after the
// refresh interval. Concurrent rebuilds collapse into one fetch, and a
// failed rebuild keeps serving the previous model.
type ModelSource struct {
	fetcher Fetcher
	refresh time.Duration
	current *imcache.Cache[string, *ftm.Model]
	group   singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu    sync.RWMutex
	stale *ftm.Model
}

// NewModelSource creates a source refreshing every refresh. A non-positive
// interval builds the model once and keeps it.
func NewModelSource(fetcher Fetcher, refresh time.Duration, logger *slog.Logger, m *metrics.Metrics) *ModelSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelSource{
		fetcher: fetcher,
		refresh: refresh,
		current: imcache.New[string, *ftm.Model](),
		logger:  logger,
		metrics: m,
	}
}

// Model returns the current model, building it if needed.
func (s *ModelSource) Model(ctx context.Context) (*ftm.Model, error) {
	if model, ok := s.current.Get(modelKey); ok {
		return model, nil
	}
	v, err, _ := s.group.Do(modelKey, func() (any, error) {
		return s.build(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*ftm.Model), nil
}

func (s *ModelSource) build(ctx context.Context) (*ftm.Model, error) {
	model, err := s.load(ctx)
	if err != nil {
		s.mu.RLock()
		stale := s.stale
		s.mu.RUnlock()
		if stale == nil {
			s.metrics.IncrementModelBuild("error")
			return nil, err
		}
		s.current.Set(modelKey, stale, imcache.WithExpiration(staleRetry))
		s.metrics.IncrementModelBuild("stale")
		s.logger.WarnContext(ctx, "model refresh failed, serving previous model",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return stale, nil
	}

	s.mu.Lock()
	s.stale = model
	s.mu.Unlock()
	s.current.Set(modelKey, model, s.expiration())
	s.metrics.IncrementModelBuild("ok")
	s.logger.InfoContext(ctx, "schema model built",
		"schemata", len(model.Schemata()),
		"types", len(model.Types()),
		"request_id", requestcontext.RequestID(ctx),
	)
	return model, nil
}

func (s *ModelSource) load(ctx context.Context) (*ftm.Model, error) {
	spec, err := s.fetcher.FetchModel(ctx)
	if err != nil {
		return nil, err
	}
	return ftm.NewModel(*spec)
}

func (s *ModelSource) expiration() imcache.Expiration {
	if s.refresh <= 0 {
		return imcache.WithNoExpiration()
	}
	return imcache.WithExpiration(s.refresh)
}

// Invalidate drops the current model so the next call rebuilds it.
func (s *ModelSource) Invalidate() {
	s.current.Remove(modelKey)
}
