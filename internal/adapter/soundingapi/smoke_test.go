//go:build sounding

package soundingapi

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// These tests hit a running sounding API and require SOUNDING_API_URL.
// Run with: go test -tags=sounding ./internal/adapter/soundingapi/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	baseURL := os.Getenv("SOUNDING_API_URL")
	if baseURL == "" {
		t.Fatal("SOUNDING_API_URL must be set to run smoke tests")
	}
	return NewClient(baseURL, 10*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_Launches(t *testing.T) {
	c := smokeClient(t)

	launches, err := c.Launches(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, launches, "archive should contain at least one launch")

	for _, l := range launches {
		assert.NotZero(t, l.ID)
		assert.False(t, l.LaunchDate.IsZero(), "launch %d has no date", l.ID)
	}
}

func TestSmoke_MeasurementsAndSummary(t *testing.T) {
	c := smokeClient(t)

	launches, err := c.Launches(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, launches)

	series, err := c.Measurements(context.Background(), launches[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, series)

	reduced := domain.ReduceSeries(series)
	assert.LessOrEqual(t, len(reduced), 2*domain.DownsampleLimit)

	if summary, ok := domain.Summarize(series); ok {
		assert.NotNil(t, summary.MaxAltitude.Height)
	}
}

func TestSmoke_UnknownLaunch(t *testing.T) {
	c := smokeClient(t)

	_, err := c.Measurements(context.Background(), -1)
	require.ErrorIs(t, err, domain.ErrLaunchNotFound)
}

func TestSmoke_CachedSource(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedSource(c, 10, observability.NewMetricsForTesting())

	launches, err := cached.Launches(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, launches)

	// First call: cache miss, real API call.
	s1, err := cached.Measurements(context.Background(), launches[0].ID)
	require.NoError(t, err)

	// Second call: served from memory.
	s2, err := cached.Measurements(context.Background(), launches[0].ID)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}
