package soundingapi

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// --- mock for cache tests ---

type countingSource struct {
	launchCalls      int
	measurementCalls int
	monthlyCalls     int
	series           []domain.Measurement
	err              error
}

func (m *countingSource) Launches(_ context.Context) ([]domain.Launch, error) {
	m.launchCalls++
	return []domain.Launch{{ID: 1}}, nil
}

func (m *countingSource) Measurements(_ context.Context, _ int) ([]domain.Measurement, error) {
	m.measurementCalls++
	return m.series, m.err
}

func (m *countingSource) MonthlyPerformance(_ context.Context, _, _ int) ([]domain.MonthlyPerformance, error) {
	m.monthlyCalls++
	return nil, nil
}

func testSeries(heights ...float64) []domain.Measurement {
	out := make([]domain.Measurement, len(heights))
	for i, h := range heights {
		out[i] = domain.Measurement{Height: domain.Float(h)}
	}
	return out
}

// --- CachedSource tests ---

func TestCachedSource_MeasurementsCacheHit(t *testing.T) {
	inner := &countingSource{series: testSeries(0, 100, 200)}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedSource(inner, 10, metrics)

	s1, err := cached.Measurements(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, s1, 3)

	s2, err := cached.Measurements(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, s2, 3)

	assert.Equal(t, 1, inner.measurementCalls, "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("memory", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("memory", "miss")))
}

func TestCachedSource_HitIsIsolatedFromCaller(t *testing.T) {
	inner := &countingSource{series: testSeries(0, 100)}
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())

	s1, err := cached.Measurements(context.Background(), 1)
	require.NoError(t, err)
	s1[0] = domain.Measurement{}

	s2, err := cached.Measurements(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, s2[0].Height)
	assert.Equal(t, 0.0, *s2[0].Height)
}

func TestCachedSource_DifferentLaunchesMiss(t *testing.T) {
	inner := &countingSource{series: testSeries(1)}
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.Measurements(context.Background(), 1)
	_, _ = cached.Measurements(context.Background(), 2)

	assert.Equal(t, 2, inner.measurementCalls)
}

func TestCachedSource_EmptySeriesNotCached(t *testing.T) {
	inner := &countingSource{series: []domain.Measurement{}}
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.Measurements(context.Background(), 1)
	_, _ = cached.Measurements(context.Background(), 1)

	assert.Equal(t, 2, inner.measurementCalls)
	assert.Equal(t, 0, cached.cache.len())
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	inner := &countingSource{err: errors.New("upstream down")}
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.Measurements(context.Background(), 1)
	require.Error(t, err)

	inner.err = nil
	inner.series = testSeries(5)
	s, err := cached.Measurements(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, s, 1)
	assert.Equal(t, 2, inner.measurementCalls)
}

func TestCachedSource_PassThrough(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, 10, observability.NewMetricsForTesting())

	for range 2 {
		_, _ = cached.Launches(context.Background())
		_, _ = cached.MonthlyPerformance(context.Background(), 2016, 6)
	}

	assert.Equal(t, 2, inner.launchCalls)
	assert.Equal(t, 2, inner.monthlyCalls)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put(1, testSeries(10))
	c.put(2, testSeries(20))

	result, ok := c.get(1)
	assert.True(t, ok)
	assert.Equal(t, 10.0, *result[0].Height)

	_, ok = c.get(99)
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, testSeries(10))
	c.put(2, testSeries(20))
	c.put(3, testSeries(30)) // evicts 1

	_, ok := c.get(1)
	assert.False(t, ok, "1 should have been evicted")

	result, ok := c.get(2)
	assert.True(t, ok)
	assert.Equal(t, 20.0, *result[0].Height)

	result, ok = c.get(3)
	assert.True(t, ok)
	assert.Equal(t, 30.0, *result[0].Height)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, testSeries(10))
	c.put(2, testSeries(20))

	// Access 1 to promote it
	c.get(1)

	// Insert 3; should evict 2 (LRU), not 1
	c.put(3, testSeries(30))

	_, ok := c.get(1)
	assert.True(t, ok, "1 was accessed recently, should not be evicted")

	_, ok = c.get(2)
	assert.False(t, ok, "2 should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put(1, testSeries(10))
	c.put(1, testSeries(11))

	result, ok := c.get(1)
	assert.True(t, ok)
	assert.Equal(t, 11.0, *result[0].Height)
	assert.Equal(t, 1, c.len())
}
