package politics

import (
	"context"

	"everypolitician/internal/ftm"
	"everypolitician/internal/upstream"
)

// Fetcher is the upstream surface the browsing service reads from.
type Fetcher interface {
	FetchModel(ctx context.Context) (*ftm.ModelSpec, error)
	Entity(ctx context.Context, id string) (*ftm.EntityPayload, error)
	Adjacent(ctx context.Context, id, prop string, limit, offset int) (*ftm.AdjacentPayload, error)
	Datasets(ctx context.Context) ([]upstream.Dataset, error)
	Dataset(ctx context.Context, name string) (*upstream.Dataset, error)
	Territory(ctx context.Context, code string) (*upstream.Territory, error)
}
