package soundingapi

import (
	"context"
	"sync"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// CachedSource wraps a SoundingSource with an in-memory LRU cache of
// measurement series. A launch's measurements never change once archived, so
// entries are only evicted for space. Launch lists and monthly aggregates are
// always fetched fresh.
type CachedSource struct {
	inner   domain.SoundingSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator holding up to maxEntries series.
func NewCachedSource(inner domain.SoundingSource, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) Launches(ctx context.Context) ([]domain.Launch, error) {
	return c.inner.Launches(ctx)
}

func (c *CachedSource) MonthlyPerformance(ctx context.Context, year, month int) ([]domain.MonthlyPerformance, error) {
	return c.inner.MonthlyPerformance(ctx, year, month)
}

func (c *CachedSource) Measurements(ctx context.Context, launchID int) ([]domain.Measurement, error) {
	if series, ok := c.cache.get(launchID); ok {
		c.metrics.CacheLookups.WithLabelValues("memory", "hit").Inc()
		return cloneSeries(series), nil
	}
	c.metrics.CacheLookups.WithLabelValues("memory", "miss").Inc()

	series, err := c.inner.Measurements(ctx, launchID)
	if err != nil {
		return nil, err
	}
	// Skip empty series so a launch still being ingested upstream is retried.
	if len(series) > 0 {
		c.cache.put(launchID, cloneSeries(series))
	}
	return series, nil
}

func cloneSeries(series []domain.Measurement) []domain.Measurement {
	out := make([]domain.Measurement, len(series))
	copy(out, series)
	return out
}

// lruCache is a simple thread-safe LRU cache of measurement series keyed by launch ID.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[int]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   int
	value []domain.Measurement
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[int]*entry),
	}
}

func (c *lruCache) get(key int) ([]domain.Measurement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key int, value []domain.Measurement) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
