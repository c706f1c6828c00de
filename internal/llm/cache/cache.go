package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/shared/util"
)

const (
	DefaultTTL = 24 * time.Hour

	keyPrefix = "resume-analyzer:enrich:"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Suggester caches provider answers by prompt digest.
type Suggester struct {
	next      llm.Suggester
	rdb       redis.Cmdable
	ttl       time.Duration
	namespace string
}

// New wraps next with a Redis cache. namespace separates answers of
// different providers or models.
func New(next llm.Suggester, rdb redis.Cmdable, ttl time.Duration, namespace string) *Suggester {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Suggester{
		next:      next,
		rdb:       rdb,
		ttl:       ttl,
		namespace: strings.TrimSpace(namespace),
	}
}

// Key returns the cache key for prompt.
func (s *Suggester) Key(prompt string) string {
	if s.namespace == "" {
		return keyPrefix + util.HashBytes([]byte(prompt))
	}
	return keyPrefix + s.namespace + ":" + util.HashBytes([]byte(prompt))
}

// Suggest serves cached text when present and stores fresh provider answers.
// Redis failures fall through to the provider.
func (s *Suggester) Suggest(ctx context.Context, prompt string) (string, error) {
	key := s.Key(prompt)

	cached, err := s.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		metrics.IncEnrichmentCache("hit")
		return cached, nil
	case errors.Is(err, redis.Nil):
		metrics.IncEnrichmentCache("miss")
	default:
		metrics.IncEnrichmentCache("error")
		telemetry.Warn("llm.cache_read_failed", map[string]any{"error": err})
	}

	out, err := s.next.Suggest(ctx, prompt)
	if err != nil {
		return "", err
	}

	if setErr := s.rdb.Set(ctx, key, out, s.ttl).Err(); setErr != nil {
		metrics.IncEnrichmentCache("error")
		telemetry.Warn("llm.cache_write_failed", map[string]any{"error": setErr})
	}
	return out, nil
}

var _ llm.Suggester = (*Suggester)(nil)
