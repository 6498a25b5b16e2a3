package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	Upstream  Upstream
	Cache     Cache
	Redis     RedisConfig
	Log       Log
	Politics  Politics
	ServeMeta bool
}

// Upstream locates the API and static data backends.
type Upstream struct {
	APIURL   string
	DataURL  string
	APIToken string
	Timeout  time.Duration
}

// Cache configures the fetch cache in front of the upstream backends.
type Cache struct {
	TTL  time.Duration
	Size int
}

// RedisConfig configures the shared Redis cache. An empty URL disables it
// and the in-process cache is used instead.
type RedisConfig struct {
	URL          string
	Prefix       string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Log configures the slog handler.
type Log struct {
	Level  string
	Format string
}

// Politics tunes the entity browsing service.
type Politics struct {
	ModelRefresh  time.Duration
	AdjacentLimit int
	FetchWorkers  int
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file in the working directory is read first when present.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	cfg := Server{
		Addr: getEnv("SITE_ADDR", ":8080"),
		Upstream: Upstream{
			APIURL:   strings.TrimRight(getEnv("API_URL", "https://api.opensanctions.org"), "/"),
			DataURL:  strings.TrimRight(getEnv("DATA_URL", "https://data.opensanctions.org"), "/"),
			APIToken: os.Getenv("API_TOKEN"),
		},
		Redis: RedisConfig{
			URL:    os.Getenv("REDIS_URL"),
			Prefix: getEnv("REDIS_PREFIX", "ep:"),
		},
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		ServeMeta: getEnv("SERVE_METRICS", "true") == "true",
	}

	var err error
	if cfg.Upstream.Timeout, err = getDuration("FETCH_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Cache.TTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return Server{}, err
	}
	if cfg.Cache.Size, err = getInt("CACHE_SIZE", 2048); err != nil {
		return Server{}, err
	}
	if cfg.Redis.PoolSize, err = getInt("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = getDuration("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Politics.ModelRefresh, err = getDuration("MODEL_REFRESH", time.Hour); err != nil {
		return Server{}, err
	}
	if cfg.Politics.AdjacentLimit, err = getInt("ADJACENT_LIMIT", 50); err != nil {
		return Server{}, err
	}
	if cfg.Politics.FetchWorkers, err = getInt("FETCH_WORKERS", 4); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}
