// Package upstream fetches entities, adjacency pages and static metadata
// from the data API and the published data site.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"everypolitician/internal/cache"
	"everypolitician/internal/ftm"
	"everypolitician/internal/platform/config"
	"everypolitician/pkg/platform/circuit"
	"everypolitician/pkg/platform/sentinel"
	"everypolitician/pkg/requestcontext"
)

// Endpoint names used for metrics, spans and errors.
const (
	EndpointModel       = "model"
	EndpointEntity      = "entity"
	EndpointAdjacent    = "adjacent"
	EndpointDatasets    = "datasets"
	EndpointDataset     = "dataset"
	EndpointTerritories = "territories"
)

const (
	tracerName   = "everypolitician/internal/upstream"
	maxBodyBytes = 32 << 20
)

// Client talks to the API and static data backends. Responses are cached
// in a cache.Store and identical concurrent fetches share one request.
type Client struct {
	httpClient *http.Client
	apiURL     string
	dataURL    string
	apiToken   string
	store      cache.Store
	ttl        time.Duration
	maxRetries uint64
	retryDelay time.Duration
	group      singleflight.Group
	breaker    *circuit.Breaker
	tracer     trace.Tracer
	metrics    *Metrics
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics records fetch latency and retries.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for cache degradation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCacheTTL sets how long fetched responses stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithRetry sets the retry budget for retryable failures.
func WithRetry(maxRetries uint64, initialDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryDelay = initialDelay
	}
}

// WithBreaker short-circuits downloads while the backends are failing.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// New builds a client for the configured backends. A nil store falls back
// to a small in-process cache.
func New(cfg config.Upstream, store cache.Store, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		dataURL:    strings.TrimRight(cfg.DataURL, "/"),
		apiToken:   cfg.APIToken,
		store:      store,
		ttl:        10 * time.Minute,
		maxRetries: 2,
		retryDelay: 200 * time.Millisecond,
		tracer:     otel.Tracer(tracerName),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.store == nil {
		c.store = cache.NewMemoryStore(256, c.ttl)
	}
	return c
}

// FetchModel loads the schema model description.
func (c *Client) FetchModel(ctx context.Context) (*ftm.ModelSpec, error) {
	var spec ftm.ModelSpec
	if err := c.getJSON(ctx, EndpointModel, "model", c.dataURL+"/meta/model.json", &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Entity fetches a single entity payload. A missing entity yields an
// error matching sentinel.ErrNotFound.
func (c *Client) Entity(ctx context.Context, id string) (*ftm.EntityPayload, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewError(CategoryNotFound, EndpointEntity, "empty entity id", nil)
	}
	var payload ftm.EntityPayload
	rawURL := c.apiURL + "/entities/" + url.PathEscape(id)
	if err := c.getJSON(ctx, EndpointEntity, "entity:"+id, rawURL, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Adjacent fetches one page of entities linked to id through prop.
func (c *Client) Adjacent(ctx context.Context, id, prop string, limit, offset int) (*ftm.AdjacentPayload, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	rawURL := fmt.Sprintf("%s/entities/%s/adjacent/%s?%s",
		c.apiURL, url.PathEscape(id), url.PathEscape(prop), query.Encode())
	key := fmt.Sprintf("adjacent:%s:%s:%d:%d", id, prop, limit, offset)

	var page ftm.AdjacentPayload
	if err := c.getJSON(ctx, EndpointAdjacent, key, rawURL, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Datasets lists the published datasets.
func (c *Client) Datasets(ctx context.Context) ([]Dataset, error) {
	var index datasetIndex
	if err := c.getJSON(ctx, EndpointDatasets, "datasets", c.dataURL+"/datasets/latest/index.json", &index); err != nil {
		return nil, err
	}
	return index.Datasets, nil
}

// Dataset fetches the metadata for a single dataset.
func (c *Client) Dataset(ctx context.Context, name string) (*Dataset, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewError(CategoryNotFound, EndpointDataset, "empty dataset name", nil)
	}
	var ds Dataset
	rawURL := c.dataURL + "/datasets/latest/" + url.PathEscape(name) + "/index.json"
	if err := c.getJSON(ctx, EndpointDataset, "dataset:"+name, rawURL, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Territories lists every known territory.
func (c *Client) Territories(ctx context.Context) ([]Territory, error) {
	var index territoryIndex
	if err := c.getJSON(ctx, EndpointTerritories, "territories", c.dataURL+"/meta/territories.json", &index); err != nil {
		return nil, err
	}
	return index.Territories, nil
}

// Territory looks up a territory by code. Codes compare case-insensitively.
func (c *Client) Territory(ctx context.Context, code string) (*Territory, error) {
	territories, err := c.Territories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range territories {
		if strings.EqualFold(territories[i].Code, code) {
			return &territories[i], nil
		}
	}
	return nil, NewError(CategoryNotFound, EndpointTerritories, "unknown territory "+code, nil)
}

func (c *Client) getJSON(ctx context.Context, endpoint, key, rawURL string, out any) error {
	body, err := c.fetch(ctx, endpoint, key, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		if derr := c.store.Delete(ctx, key); derr != nil {
			c.logger.WarnContext(ctx, "failed to evict malformed cache entry",
				"key", key,
				"error", derr,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return NewError(CategoryBadData, endpoint, "decode response", errors.Join(sentinel.ErrMalformed, err))
	}
	return nil
}

// fetch serves key from the cache or downloads it. Cache failures degrade
// to a direct fetch.
func (c *Client) fetch(ctx context.Context, endpoint, key, rawURL string) ([]byte, error) {
	body, err := c.store.Get(ctx, key)
	if err == nil {
		return body, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		c.logger.WarnContext(ctx, "cache read failed",
			"key", key,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	// The shared download must not die with whichever caller started it,
	// but each caller stops waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		body, err := c.download(shared, endpoint, rawURL)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(shared, key, body, c.ttl); err != nil {
			c.logger.WarnContext(shared, "cache write failed",
				"key", key,
				"error", err,
				"request_id", requestcontext.RequestID(shared),
			)
		}
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, transportError(endpoint, ctx.Err())
	case res := <-ch:
		if res.Shared {
			c.metrics.incCollapsed()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) download(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "upstream."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("upstream.endpoint", endpoint),
			attribute.String("url.full", rawURL),
		),
	)
	defer span.End()

	if c.breaker != nil && !c.breaker.Allow() {
		err := NewError(CategoryOutage, endpoint, "circuit open", sentinel.ErrUnavailable)
		err.Retryable = false
		c.metrics.observeFetch(endpoint, err, 0)
		span.SetStatus(codes.Error, "circuit open")
		return nil, err
	}

	start := time.Now()
	attempts := 0
	var body []byte
	operation := func() error {
		if attempts > 0 {
			c.metrics.incRetry(endpoint)
		}
		attempts++
		var err error
		body, err = c.do(ctx, endpoint, rawURL)
		if err != nil && !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryDelay
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx))
	if err != nil {
		var ue *Error
		if !errors.As(err, &ue) {
			err = transportError(endpoint, err)
		}
	}

	c.metrics.observeFetch(endpoint, err, time.Since(start))
	c.recordOutcome(ctx, err)
	span.SetAttributes(attribute.Int("upstream.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(GetCategory(err)))
		return nil, err
	}
	return body, nil
}

// recordOutcome feeds the breaker. Only outages and timeouts count as
// failures; a not-found answer proves the backend is healthy.
func (c *Client) recordOutcome(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	var change circuit.StateChange
	switch GetCategory(err) {
	case CategoryOutage, CategoryTimeout:
		_, change = c.breaker.RecordFailure()
	default:
		_, change = c.breaker.RecordSuccess()
	}
	if change.Opened {
		c.logger.WarnContext(ctx, "upstream circuit opened", "breaker", c.breaker.Name())
	}
	if change.Closed {
		c.logger.InfoContext(ctx, "upstream circuit closed", "breaker", c.breaker.Name())
	}
}

func (c *Client) do(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, NewError(CategoryInternal, endpoint, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" && strings.HasPrefix(rawURL, c.apiURL) {
		req.Header.Set("Authorization", "ApiKey "+c.apiToken)
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(endpoint, resp.StatusCode)
	}
	return body, nil
}

func transportError(endpoint string, err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return NewError(CategoryTimeout, endpoint, "request timed out", err)
	case errors.Is(err, context.Canceled):
		return NewError(CategoryInternal, endpoint, "request cancelled", err)
	default:
		return NewError(CategoryOutage, endpoint, "request failed", err)
	}
}

func statusError(endpoint string, status int) *Error {
	var e *Error
	switch {
	case status == http.StatusNotFound:
		e = NewError(CategoryNotFound, endpoint, "record not found", nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e = NewError(CategoryAuthentication, endpoint, "credentials rejected", nil)
	case status == http.StatusTooManyRequests:
		e = NewError(CategoryRateLimited, endpoint, "rate limited", nil)
	case status >= http.StatusInternalServerError:
		e = NewError(CategoryOutage, endpoint, "server error", nil)
	default:
		e = NewError(CategoryBadData, endpoint, "unexpected status", nil)
	}
	e.Status = status
	return e
}
