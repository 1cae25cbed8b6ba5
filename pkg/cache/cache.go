package cache

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/favorites-service/pkg/logger"
)

// Config holds response cache configuration
type Config struct {
	TTL            time.Duration
	CacheablePaths []string
}

// DefaultConfig caches the two catalog listings for a short window. A
// successful write to a listing drops its cached entry, so reads after a
// create never serve the pre-write list. Favorite listings are never cached.
func DefaultConfig() Config {
	return Config{
		TTL:            30 * time.Second,
		CacheablePaths: []string{"/api/users", "/api/products"},
	}
}

// Store is the subset of redis.Client the middleware needs.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewClient connects to Redis and verifies the connection
func NewClient(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// responseRecorder captures the response so it can be cached after the fact
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Middleware serves successful GET responses for the configured paths out of
// the store and invalidates them on successful writes to the same path. A
// nil store disables caching entirely.
func Middleware(store Store, config Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || !isPathCacheable(r.URL.Path, config.CacheablePaths) {
				next.ServeHTTP(w, r)
				return
			}

			cacheKey := "httpcache:" + r.URL.Path
			ctx := r.Context()

			if r.Method != http.MethodGet {
				rw := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
				next.ServeHTTP(rw, r)

				// Drop the stale listing once the write is known to have
				// succeeded
				if rw.statusCode >= 200 && rw.statusCode < 300 {
					if err := store.Del(ctx, cacheKey).Err(); err != nil {
						logger.Warn(ctx).
							Err(err).
							Str("cache_key", cacheKey).
							Msg("Failed to invalidate cached response")
					}
				}
				return
			}

			cached, err := store.Get(ctx, cacheKey).Bytes()
			if err == nil && len(cached) > 0 {
				logger.Debug(ctx).
					Str("path", r.URL.Path).
					Str("cache_key", cacheKey).
					Msg("Cache hit")

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.Write(cached)
				return
			}

			rw := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			rw.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rw, r)

			if rw.statusCode == http.StatusOK {
				if err := store.Set(ctx, cacheKey, rw.body.Bytes(), config.TTL).Err(); err != nil {
					logger.Warn(ctx).
						Err(err).
						Str("cache_key", cacheKey).
						Msg("Failed to cache response")
				}
			}
		})
	}
}

func isPathCacheable(path string, cacheable []string) bool {
	for _, p := range cacheable {
		if path == p {
			return true
		}
	}
	return false
}
