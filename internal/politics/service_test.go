package politics

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"everypolitician/internal/ftm"
	"everypolitician/internal/politics/metrics"
	"everypolitician/internal/politics/mocks"
	"everypolitician/internal/upstream"
	dErrors "everypolitician/pkg/domain-errors"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Fetcher

// =============================================================================
// Service Test Suite
// =============================================================================
// Justification for unit tests: entity loading splices separately fetched
// relationships into a bound entity. Tests pin which properties are fetched,
// that each is merged once, and how upstream failures become domain codes.

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	fetcher *mocks.MockFetcher
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.fetcher = mocks.NewMockFetcher(s.ctrl)
	s.fetcher.EXPECT().FetchModel(gomock.Any()).Return(loadSpec(s.T()), nil).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.service = NewService(s.fetcher, NewModelSource(s.fetcher, 0, logger, m),
		WithLogger(logger),
		WithMetrics(m),
		WithAdjacentLimit(10),
		WithWorkers(2),
	)
}

func loadSpec(t *testing.T) *ftm.ModelSpec {
	t.Helper()
	data, err := os.ReadFile("testdata/model.json")
	require.NoError(t, err)
	var spec ftm.ModelSpec
	require.NoError(t, json.Unmarshal(data, &spec))
	return &spec
}

func person(id string) *ftm.EntityPayload {
	return &ftm.EntityPayload{
		ID:     id,
		Schema: "Person",
		Properties: map[string][]ftm.RawValue{
			"name": {{Text: "Ada Lovelace"}},
		},
	}
}

func occupancyPage(total int, ids ...string) *ftm.AdjacentPayload {
	page := &ftm.AdjacentPayload{Total: ftm.Total{Value: total, Relation: "eq"}, Limit: 10}
	for _, id := range ids {
		page.Results = append(page.Results, &ftm.EntityPayload{
			ID:     id,
			Schema: "Occupancy",
			Properties: map[string][]ftm.RawValue{
				"status": {{Text: "current"}},
				"post": {{Entity: &ftm.EntityPayload{ID: "pos-" + id, Schema: "Position", Caption: "Mayor"}}},
			},
		})
	}
	return page
}

func (s *ServiceSuite) TestEntitySplicesRelations() {
	s.fetcher.EXPECT().Entity(gomock.Any(), "Q1").Return(person("Q1"), nil)
	s.fetcher.EXPECT().Adjacent(gomock.Any(), "Q1", "positionOccupancies", 10, 0).Return(occupancyPage(12, "occ1", "occ2"), nil)
	s.fetcher.EXPECT().Adjacent(gomock.Any(), "Q1", "familyPerson", 10, 0).Return(&ftm.AdjacentPayload{}, nil)

	result, err := s.service.Entity(s.ctx, "Q1")
	s.Require().NoError(err)

	entity := result.Entity
	s.Equal([]string{"occ1", "occ2"}, entity.Strings("positionOccupancies"))
	posts := entity.Entities("positionOccupancies")[0].Entities("post")
	s.Require().Len(posts, 1)
	s.True(posts[0].Schema.IsA("Thing"))

	s.Require().Len(result.Relations, 2)
	s.Equal("familyPerson", result.Relations[0].Property.Name)
	s.Empty(result.Relations[0].Entities)
	occupancies := result.Relations[1]
	s.Equal("positionOccupancies", occupancies.Property.Name)
	s.Equal(12, occupancies.Total)
	s.True(occupancies.HasMore())
}

func (s *ServiceSuite) TestEntitySkipsRelationsAlreadyPresent() {
	payload := person("Q1")
	payload.Properties["positionOccupancies"] = []ftm.RawValue{{Entity: &ftm.EntityPayload{ID: "occ1", Schema: "Occupancy"}}}
	s.fetcher.EXPECT().Entity(gomock.Any(), "Q1").Return(payload, nil)
	s.fetcher.EXPECT().Adjacent(gomock.Any(), "Q1", "familyPerson", 10, 0).Return(nil, upstream.NewError(upstream.CategoryNotFound, upstream.EndpointAdjacent, "none", nil))

	result, err := s.service.Entity(s.ctx, "Q1")
	s.Require().NoError(err)
	s.Equal([]string{"occ1"}, result.Entity.Strings("positionOccupancies"), "existing values are not merged twice")
	s.Require().Len(result.Relations, 1)
	s.Equal("familyPerson", result.Relations[0].Property.Name)
}

func (s *ServiceSuite) TestEntityWithoutRelations() {
	s.fetcher.EXPECT().Entity(gomock.Any(), "org1").Return(&ftm.EntityPayload{ID: "org1", Schema: "Organization"}, nil)

	result, err := s.service.Entity(s.ctx, "org1")
	s.Require().NoError(err)
	s.Empty(result.Relations)
	s.Equal("Organization", result.Entity.DisplayCaption())
}

func (s *ServiceSuite) TestEntityErrors() {
	s.Run("missing entity is not found", func() {
		s.fetcher.EXPECT().Entity(gomock.Any(), "nope").Return(nil, upstream.NewError(upstream.CategoryNotFound, upstream.EndpointEntity, "missing", nil))
		_, err := s.service.Entity(s.ctx, "nope")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("upstream outage is unavailable", func() {
		s.fetcher.EXPECT().Entity(gomock.Any(), "Q1").Return(nil, upstream.NewError(upstream.CategoryOutage, upstream.EndpointEntity, "down", nil))
		_, err := s.service.Entity(s.ctx, "Q1")
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("upstream timeout", func() {
		s.fetcher.EXPECT().Entity(gomock.Any(), "Q1").Return(nil, upstream.NewError(upstream.CategoryTimeout, upstream.EndpointEntity, "slow", nil))
		_, err := s.service.Entity(s.ctx, "Q1")
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	s.Run("unknown schema is internal", func() {
		s.fetcher.EXPECT().Entity(gomock.Any(), "v1").Return(&ftm.EntityPayload{ID: "v1", Schema: "Vessel"}, nil)
		_, err := s.service.Entity(s.ctx, "v1")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.ErrorIs(err, ftm.ErrUnknownSchema)
	})

	s.Run("relationship outage fails the load", func() {
		s.fetcher.EXPECT().Entity(gomock.Any(), "Q1").Return(person("Q1"), nil)
		s.fetcher.EXPECT().Adjacent(gomock.Any(), "Q1", gomock.Any(), 10, 0).
			Return(nil, upstream.NewError(upstream.CategoryOutage, upstream.EndpointAdjacent, "down", nil)).
			MinTimes(1).MaxTimes(2)
		_, err := s.service.Entity(s.ctx, "Q1")
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *ServiceSuite) TestRelationPage() {
	s.Run("pages through a relationship", func() {
		s.fetcher.EXPECT().Entity(gomock.Any(), "Q1").Return(person("Q1"), nil)
		page := occupancyPage(12, "occ11", "occ12")
		page.Offset = 10
		s.fetcher.EXPECT().Adjacent(gomock.Any(), "Q1", "positionOccupancies", 10, 10).Return(page, nil)

		result, err := s.service.Relation(s.ctx, "Q1", "positionOccupancies", 0, 10)
		s.Require().NoError(err)
		s.Equal(10, result.Limit)
		s.Len(result.Entities, 2)
		s.False(result.HasMore())
	})

	s.Run("scalar property is not a relationship", func() {
		s.fetcher.EXPECT().Entity(gomock.Any(), "Q1").Return(person("Q1"), nil)
		_, err := s.service.Relation(s.ctx, "Q1", "birthDate", 10, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestSchemaLookup() {
	schema, err := s.service.Schema(s.ctx, "Person")
	s.Require().NoError(err)
	s.Equal("People", schema.Plural)

	_, err = s.service.Schema(s.ctx, "Vessel")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	schemata, err := s.service.Schemata(s.ctx)
	s.Require().NoError(err)
	s.Len(schemata, 8)

	types, err := s.service.Types(s.ctx)
	s.Require().NoError(err)
	s.Len(types, 7)
}

func (s *ServiceSuite) TestStaticLookups() {
	s.fetcher.EXPECT().Territory(gomock.Any(), "de").Return(&upstream.Territory{Code: "de", Name: "Germany"}, nil)
	territory, err := s.service.Territory(s.ctx, "de")
	s.Require().NoError(err)
	s.Equal("Germany", territory.Name)

	s.fetcher.EXPECT().Dataset(gomock.Any(), "nope").Return(nil, upstream.NewError(upstream.CategoryNotFound, upstream.EndpointDataset, "missing", nil))
	_, err = s.service.Dataset(s.ctx, "nope")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.fetcher.EXPECT().Datasets(gomock.Any()).Return([]upstream.Dataset{{Name: "peps"}}, nil)
	datasets, err := s.service.Datasets(s.ctx)
	s.Require().NoError(err)
	s.Len(datasets, 1)
}
