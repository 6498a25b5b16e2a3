package politics

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"everypolitician/internal/ftm"
	"everypolitician/internal/politics/metrics"
	"everypolitician/internal/politics/mocks"
	"everypolitician/internal/upstream"
	tu "everypolitician/pkg/testutil"
)

func newSource(t *testing.T, refresh time.Duration) (*ModelSource, *mocks.MockFetcher, *metrics.Metrics) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewModelSource(fetcher, refresh, logger, m), fetcher, m
}

func TestModelSource(t *testing.T) {
	ctx := context.Background()

	tu.Given(t, "a model that built once", func(t *testing.T) {
		source, fetcher, m := newSource(t, time.Hour)
		fetcher.EXPECT().FetchModel(gomock.Any()).Return(loadSpec(t), nil).Times(1)

		first, err := source.Model(ctx)
		require.NoError(t, err)

		tu.Then(t, "later calls reuse it", func(t *testing.T) {
			again, err := source.Model(ctx)
			require.NoError(t, err)
			assert.Same(t, first, again)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ModelBuilds.WithLabelValues("ok")))
		})
	})

	tu.Given(t, "concurrent first requests", func(t *testing.T) {
		source, fetcher, _ := newSource(t, time.Hour)
		release := make(chan struct{})
		fetcher.EXPECT().FetchModel(gomock.Any()).DoAndReturn(func(context.Context) (*ftm.ModelSpec, error) {
			<-release
			return loadSpec(t), nil
		}).MinTimes(1).MaxTimes(8)

		tu.Then(t, "all callers see the same model", func(t *testing.T) {
			var wg sync.WaitGroup
			models := make([]*ftm.Model, 8)
			for i := range models {
				wg.Add(1)
				go func() {
					defer wg.Done()
					model, err := source.Model(ctx)
					assert.NoError(t, err)
					models[i] = model
				}()
			}
			close(release)
			wg.Wait()
			for _, model := range models {
				assert.NotNil(t, model)
			}
		})
	})

	tu.Given(t, "a failing backend and no previous model", func(t *testing.T) {
		source, fetcher, m := newSource(t, time.Hour)
		fetcher.EXPECT().FetchModel(gomock.Any()).Return(nil, upstream.NewError(upstream.CategoryOutage, upstream.EndpointModel, "down", nil))

		tu.Then(t, "the error is returned", func(t *testing.T) {
			_, err := source.Model(ctx)
			assert.True(t, upstream.IsRetryable(err))
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ModelBuilds.WithLabelValues("error")))
		})
	})

	tu.Given(t, "a failing refresh after a successful build", func(t *testing.T) {
		source, fetcher, m := newSource(t, time.Hour)
		gomock.InOrder(
			fetcher.EXPECT().FetchModel(gomock.Any()).Return(loadSpec(t), nil),
			fetcher.EXPECT().FetchModel(gomock.Any()).Return(nil, upstream.NewError(upstream.CategoryOutage, upstream.EndpointModel, "down", nil)),
		)
		first, err := source.Model(ctx)
		require.NoError(t, err)

		tu.When(t, "the model is invalidated", func(t *testing.T) {
			source.Invalidate()

			tu.Then(t, "the previous model is served", func(t *testing.T) {
				again, err := source.Model(ctx)
				require.NoError(t, err)
				assert.Same(t, first, again)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.ModelBuilds.WithLabelValues("stale")))
			})

			tu.And(t, "the backend is not asked again right away", func(t *testing.T) {
				again, err := source.Model(ctx)
				require.NoError(t, err)
				assert.Same(t, first, again)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.ModelBuilds.WithLabelValues("stale")))
			})
		})
	})

	tu.Given(t, "an invalid model description", func(t *testing.T) {
		source, fetcher, _ := newSource(t, 0)
		fetcher.EXPECT().FetchModel(gomock.Any()).Return(&ftm.ModelSpec{
			Schemata: map[string]ftm.SchemaSpec{"Person": {Extends: []string{"Thing"}}},
		}, nil)

		tu.Then(t, "construction fails with a schema error", func(t *testing.T) {
			_, err := source.Model(ctx)
			assert.ErrorIs(t, err, ftm.ErrUnknownSchema)
		})
	})
}
