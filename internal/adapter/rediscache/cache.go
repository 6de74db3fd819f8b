// Package rediscache shares measurement series between dashboard replicas
// through Redis. It decorates a domain.SoundingSource and never makes Redis a
// hard dependency: any Redis failure falls through to the wrapped source.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

const layer = "redis"

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// KV is the subset of the Redis command set the cache uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a Redis client and verifies it answers PING.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// CachedSource caches measurement series in Redis under
// <prefix>measurements:<launch id> with a fixed TTL.
type CachedSource struct {
	inner   domain.SoundingSource
	kv      KV
	prefix  string
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New wraps inner with a Redis-backed measurement cache.
func New(inner domain.SoundingSource, kv KV, prefix string, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		inner:   inner,
		kv:      kv,
		prefix:  prefix,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *CachedSource) Launches(ctx context.Context) ([]domain.Launch, error) {
	return c.inner.Launches(ctx)
}

func (c *CachedSource) MonthlyPerformance(ctx context.Context, year, month int) ([]domain.MonthlyPerformance, error) {
	return c.inner.MonthlyPerformance(ctx, year, month)
}

func (c *CachedSource) Measurements(ctx context.Context, launchID int) ([]domain.Measurement, error) {
	key := c.key(launchID)

	if series, ok := c.lookup(ctx, key); ok {
		return series, nil
	}

	series, err := c.inner.Measurements(ctx, launchID)
	if err != nil {
		return nil, err
	}
	if len(series) > 0 {
		c.store(ctx, key, series)
	}
	return series, nil
}

func (c *CachedSource) key(launchID int) string {
	return c.prefix + "measurements:" + strconv.Itoa(launchID)
}

func (c *CachedSource) lookup(ctx context.Context, key string) ([]domain.Measurement, bool) {
	raw, err := c.kv.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.metrics.CacheLookups.WithLabelValues(layer, "miss").Inc()
		return nil, false
	case err != nil:
		c.metrics.CacheLookups.WithLabelValues(layer, "error").Inc()
		c.logger.Warn("redis get failed", "key", key, "error", err)
		return nil, false
	}

	var series []domain.Measurement
	if err := json.Unmarshal(raw, &series); err != nil {
		c.metrics.CacheLookups.WithLabelValues(layer, "error").Inc()
		c.logger.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return nil, false
	}

	c.metrics.CacheLookups.WithLabelValues(layer, "hit").Inc()
	return series, true
}

func (c *CachedSource) store(ctx context.Context, key string, series []domain.Measurement) {
	payload, err := json.Marshal(series)
	if err != nil {
		c.logger.Warn("encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.kv.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", "key", key, "error", err)
	}
}
