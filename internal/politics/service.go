package politics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"everypolitician/internal/ftm"
	"everypolitician/internal/politics/metrics"
	"everypolitician/internal/upstream"
	dErrors "everypolitician/pkg/domain-errors"
	"everypolitician/pkg/platform/sentinel"
	"everypolitician/pkg/requestcontext"
)

const (
	defaultAdjacentLimit = 50
	defaultWorkers       = 4
	loadTimeout          = 30 * time.Second
)

// Service loads entities and schema metadata for the site's pages.
type Service struct {
	fetcher       Fetcher
	models        *ModelSource
	logger        *slog.Logger
	metrics       *metrics.Metrics
	adjacentLimit int
	workers       int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics records load latency and fan-out.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAdjacentLimit sets the page size of relationship fetches.
func WithAdjacentLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.adjacentLimit = limit
		}
	}
}

// WithWorkers bounds concurrent relationship fetches per entity.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewService wires the service to its fetcher and model source.
func NewService(fetcher Fetcher, models *ModelSource, opts ...Option) *Service {
	s := &Service{
		fetcher:       fetcher,
		models:        models,
		logger:        slog.Default(),
		adjacentLimit: defaultAdjacentLimit,
		workers:       defaultWorkers,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AdjacentLimit is the default relationship page size.
func (s *Service) AdjacentLimit() int {
	return s.adjacentLimit
}

// Entity loads an entity in two phases: the record itself, then the first
// page of every relationship property its schema marks as a stub. Each
// relationship is merged once; properties the payload already carries are
// not fetched again.
func (s *Service) Entity(ctx context.Context, id string) (*EntityResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	model, err := s.model(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := s.fetcher.Entity(ctx, id)
	if err != nil {
		return nil, translate(err, "entity not found")
	}
	entity, err := model.GetEntity(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "entity does not fit the schema model",
			"request_id", requestcontext.RequestID(ctx),
			"entity_id", id,
			"schema", payload.Schema,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "entity could not be read")
	}
	s.metrics.ObserveLoadLatency("entity", time.Since(start))

	relations, err := s.loadRelations(ctx, entity)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveLoadLatency("total", time.Since(start))

	s.logger.DebugContext(ctx, "entity loaded",
		"request_id", requestcontext.RequestID(ctx),
		"entity_id", entity.ID,
		"schema", entity.Schema.Name,
		"relations", len(relations),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &EntityResult{Entity: entity, Relations: relations}, nil
}

// relationProperties lists the stub entity properties worth fetching, in
// name order.
func relationProperties(entity *ftm.Entity) []*ftm.Property {
	var props []*ftm.Property
	for _, prop := range entity.Schema.SortedProperties() {
		if !prop.Stub || !prop.IsEntity() || prop.Hidden {
			continue
		}
		if entity.HasProperty(prop.Name) {
			continue
		}
		props = append(props, prop)
	}
	return props
}

func (s *Service) loadRelations(ctx context.Context, entity *ftm.Entity) ([]Relation, error) {
	start := time.Now()
	props := relationProperties(entity)
	s.metrics.ObserveRelationFanout(len(props))
	if len(props) == 0 {
		return nil, nil
	}

	model := entity.Schema.Model()
	pages := make([]*ftm.AdjacentPayload, len(props))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, prop := range props {
		g.Go(func() error {
			page, err := s.fetcher.Adjacent(gctx, entity.ID, prop.Name, s.adjacentLimit, 0)
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			if err != nil {
				return translate(err, "relationship not found")
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "relationship fetch failed",
			"request_id", requestcontext.RequestID(ctx),
			"entity_id", entity.ID,
			"error", err,
		)
		return nil, err
	}

	// Splicing happens after Wait: entities are not safe for concurrent use.
	relations := make([]Relation, 0, len(props))
	for i, prop := range props {
		rel := Relation{Property: prop}
		if page := pages[i]; page != nil {
			rel.Total = page.Total.Value
			rel.Relation = page.Total.Relation
			entities, err := bindAll(model, page.Results)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "relationship could not be read")
			}
			values := make([]ftm.Value, len(entities))
			for j, adj := range entities {
				values[j] = ftm.EntityValue(adj)
			}
			entity.SetProperty(prop.Name, values...)
			rel.Entities = entities
		}
		relations = append(relations, rel)
	}
	s.metrics.ObserveLoadLatency("relations", time.Since(start))
	return relations, nil
}

// Relation fetches one page of a relationship property on its own, for
// paging past what Entity loaded.
func (s *Service) Relation(ctx context.Context, id, prop string, limit, offset int) (*RelationPage, error) {
	model, err := s.model(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := s.fetcher.Entity(ctx, id)
	if err != nil {
		return nil, translate(err, "entity not found")
	}
	schema, err := model.Schema(payload.Schema)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "entity could not be read")
	}
	property := schema.Property(prop)
	if property == nil || !property.IsEntity() {
		return nil, dErrors.New(dErrors.CodeNotFound, "no relationship "+prop+" on "+schema.Label)
	}
	if limit <= 0 {
		limit = s.adjacentLimit
	}

	result := &RelationPage{Subject: payload.ID, Property: property, Limit: limit, Offset: offset}
	page, err := s.fetcher.Adjacent(ctx, payload.ID, prop, limit, offset)
	if errors.Is(err, sentinel.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, translate(err, "relationship not found")
	}
	entities, err := bindAll(model, page.Results)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "relationship could not be read")
	}
	result.Entities = entities
	result.Total = page.Total.Value
	result.Relation = page.Total.Relation
	return result, nil
}

// Schema returns the named schema. Names come from URLs here, so an unknown
// name is a missing page rather than a configuration error.
func (s *Service) Schema(ctx context.Context, name string) (*ftm.Schema, error) {
	model, err := s.model(ctx)
	if err != nil {
		return nil, err
	}
	schema, err := model.Schema(name)
	if errors.Is(err, ftm.ErrUnknownSchema) {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown schema "+name)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "schema lookup failed")
	}
	return schema, nil
}

// Schemata lists every schema in name order.
func (s *Service) Schemata(ctx context.Context) ([]*ftm.Schema, error) {
	model, err := s.model(ctx)
	if err != nil {
		return nil, err
	}
	return model.Schemata(), nil
}

// Types lists every property type in name order.
func (s *Service) Types(ctx context.Context) ([]*ftm.PropertyType, error) {
	model, err := s.model(ctx)
	if err != nil {
		return nil, err
	}
	return model.Types(), nil
}

// Territory returns the territory with the given code.
func (s *Service) Territory(ctx context.Context, code string) (*upstream.Territory, error) {
	territory, err := s.fetcher.Territory(ctx, code)
	if err != nil {
		return nil, translate(err, "territory not found")
	}
	return territory, nil
}

// Datasets lists the published datasets.
func (s *Service) Datasets(ctx context.Context) ([]upstream.Dataset, error) {
	datasets, err := s.fetcher.Datasets(ctx)
	if err != nil {
		return nil, translate(err, "datasets not found")
	}
	return datasets, nil
}

// Dataset returns the named dataset.
func (s *Service) Dataset(ctx context.Context, name string) (*upstream.Dataset, error) {
	dataset, err := s.fetcher.Dataset(ctx, name)
	if err != nil {
		return nil, translate(err, "dataset not found")
	}
	return dataset, nil
}

func (s *Service) model(ctx context.Context) (*ftm.Model, error) {
	model, err := s.models.Model(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "schema model unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		if ftm.IsSchemaError(err) || errors.Is(err, ftm.ErrInvalidModel) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "schema model is invalid")
		}
		return nil, translate(err, "schema model not found")
	}
	return model, nil
}

func bindAll(model *ftm.Model, payloads []*ftm.EntityPayload) ([]*ftm.Entity, error) {
	entities := make([]*ftm.Entity, 0, len(payloads))
	for _, payload := range payloads {
		entity, err := model.GetEntity(payload)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// translate maps upstream failures onto domain error codes.
func translate(err error, notFound string) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, notFound)
	case upstream.GetCategory(err) == upstream.CategoryTimeout,
		errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "upstream timed out")
	case errors.Is(err, sentinel.ErrUnavailable), errors.Is(err, sentinel.ErrMalformed):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "upstream unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "upstream request failed")
	}
}
