package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"everypolitician/internal/ftm"
	"everypolitician/internal/politics"
	"everypolitician/internal/upstream"
	dErrors "everypolitician/pkg/domain-errors"
	"everypolitician/pkg/platform/httputil"
	"everypolitician/pkg/requestcontext"
)

const maxRelationLimit = 500

// Service defines the browsing operations the handler serves.
type Service interface {
	Entity(ctx context.Context, id string) (*politics.EntityResult, error)
	Relation(ctx context.Context, id, prop string, limit, offset int) (*politics.RelationPage, error)
	Schema(ctx context.Context, name string) (*ftm.Schema, error)
	Schemata(ctx context.Context) ([]*ftm.Schema, error)
	Types(ctx context.Context) ([]*ftm.PropertyType, error)
	Territory(ctx context.Context, code string) (*upstream.Territory, error)
	Datasets(ctx context.Context) ([]upstream.Dataset, error)
	Dataset(ctx context.Context, name string) (*upstream.Dataset, error)
}

// Handler wires browsing endpoints to the politics service.
type Handler struct {
	service       Service
	logger        *slog.Logger
	relationLimit int
}

// New constructs a browsing handler with its dependencies.
func New(service Service, logger *slog.Logger, relationLimit int) *Handler {
	if relationLimit <= 0 {
		relationLimit = 50
	}
	return &Handler{
		service:       service,
		logger:        logger,
		relationLimit: relationLimit,
	}
}

// Register mounts browsing endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/entities/{id}", h.HandleEntity)
	r.Get("/entities/{id}/relations/{prop}", h.HandleRelation)
	r.Get("/schemata", h.HandleSchemata)
	r.Get("/schemata/{name}", h.HandleSchema)
	r.Get("/types", h.HandleTypes)
	r.Get("/territories/{code}", h.HandleTerritory)
	r.Get("/datasets", h.HandleDatasets)
	r.Get("/datasets/{name}", h.HandleDataset)
}

// HandleEntity handles GET /entities/{id}.
func (h *Handler) HandleEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	id := chi.URLParam(r, "id")

	result, err := h.service.Entity(ctx, id)
	if err != nil {
		h.fail(ctx, w, "entity load failed", err, "entity_id", id)
		return
	}

	h.logger.InfoContext(ctx, "entity served",
		"request_id", requestcontext.RequestID(ctx),
		"entity_id", id,
		"schema", result.Entity.Schema.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromEntityResult(result))
}

// HandleRelation handles GET /entities/{id}/relations/{prop}.
func (h *Handler) HandleRelation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	prop := chi.URLParam(r, "prop")

	limit, err := httputil.QueryInt(r, "limit", h.relationLimit, maxRelationLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	offset, err := httputil.QueryInt(r, "offset", 0, 0)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, err := h.service.Relation(ctx, id, prop, limit, offset)
	if err != nil {
		h.fail(ctx, w, "relation load failed", err, "entity_id", id, "property", prop)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRelationPage(page))
}

// HandleSchemata handles GET /schemata.
func (h *Handler) HandleSchemata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	schemata, err := h.service.Schemata(ctx)
	if err != nil {
		h.fail(ctx, w, "schemata load failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSchemata(schemata))
}

// HandleSchema handles GET /schemata/{name}.
func (h *Handler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	schema, err := h.service.Schema(ctx, name)
	if err != nil {
		h.fail(ctx, w, "schema load failed", err, "schema", name)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSchema(schema))
}

// HandleTypes handles GET /types.
func (h *Handler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	types, err := h.service.Types(ctx)
	if err != nil {
		h.fail(ctx, w, "types load failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTypes(types))
}

// HandleTerritory handles GET /territories/{code}.
func (h *Handler) HandleTerritory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")
	territory, err := h.service.Territory(ctx, code)
	if err != nil {
		h.fail(ctx, w, "territory load failed", err, "territory", code)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, territory)
}

// HandleDatasets handles GET /datasets.
func (h *Handler) HandleDatasets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	datasets, err := h.service.Datasets(ctx)
	if err != nil {
		h.fail(ctx, w, "datasets load failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DatasetsResponse{Datasets: datasets})
}

// HandleDataset handles GET /datasets/{name}.
func (h *Handler) HandleDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	dataset, err := h.service.Dataset(ctx, name)
	if err != nil {
		h.fail(ctx, w, "dataset load failed", err, "dataset", name)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dataset)
}

// fail logs at a level matching the error code and writes the response.
// Missing records are expected traffic, not failures.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	args := append([]any{"request_id", requestcontext.RequestID(ctx), "error", err}, attrs...)
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		h.logger.DebugContext(ctx, msg, args...)
	} else {
		h.logger.ErrorContext(ctx, msg, args...)
	}
	httputil.WriteError(w, err)
}
