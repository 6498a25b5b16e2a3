package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"everypolitician/internal/cache"
	"everypolitician/internal/platform/config"
	"everypolitician/internal/platform/httpserver"
	"everypolitician/internal/platform/logger"
	"everypolitician/internal/platform/metrics"
	"everypolitician/internal/platform/middleware"
	platformredis "everypolitician/internal/platform/redis"
	"everypolitician/internal/politics"
	politicshandler "everypolitician/internal/politics/handler"
	politicsmetrics "everypolitician/internal/politics/metrics"
	"everypolitician/internal/upstream"
	"everypolitician/pkg/platform/circuit"
	"everypolitician/pkg/platform/httputil"
	"everypolitician/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	cacheMetrics := cache.NewMetrics(prometheus.DefaultRegisterer)
	var store cache.Store
	if redisClient != nil {
		store = cache.NewRedisStore(redisClient.Client, cfg.Redis.Prefix, cache.WithRedisMetrics(cacheMetrics))
		log.Info("using redis cache", "prefix", cfg.Redis.Prefix)
	} else {
		store = cache.NewMemoryStore(cfg.Cache.Size, cfg.Cache.TTL, cache.WithMemoryMetrics(cacheMetrics))
		log.Info("using in-process cache", "size", cfg.Cache.Size, "ttl", cfg.Cache.TTL)
	}

	client := upstream.New(cfg.Upstream, store,
		upstream.WithMetrics(upstream.NewMetrics(prometheus.DefaultRegisterer)),
		upstream.WithLogger(log),
		upstream.WithCacheTTL(cfg.Cache.TTL),
		upstream.WithBreaker(circuit.New("upstream", circuit.WithFailureThreshold(5), circuit.WithCooldown(30*time.Second))),
	)

	politicsMetrics := politicsmetrics.New()
	models := politics.NewModelSource(client, cfg.Politics.ModelRefresh, log, politicsMetrics)
	service := politics.NewService(client, models,
		politics.WithLogger(log),
		politics.WithMetrics(politicsMetrics),
		politics.WithAdjacentLimit(cfg.Politics.AdjacentLimit),
		politics.WithWorkers(cfg.Politics.FetchWorkers),
	)

	go func() {
		if _, err := models.Model(ctx); err != nil {
			log.WarnContext(ctx, "schema model warm-up failed", "error", err)
		}
	}()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requesttime.Middleware)
	router.Use(chimw.Recoverer)
	router.Use(middleware.AccessLog(log, metrics.New()))

	router.Get("/healthz", healthz(redisClient))
	if cfg.ServeMeta {
		router.Handle("/metrics", promhttp.Handler())
	}
	politicshandler.New(service, log, cfg.Politics.AdjacentLimit).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting everypolitician site backend", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func healthz(redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
				httputil.WriteJSON(w, http.StatusServiceUnavailable, status)
				return
			}
			status["redis"] = "ok"
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
