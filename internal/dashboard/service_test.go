package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sounding-explorer/internal/dashboard"
	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// --- mocks ---

type mockSource struct {
	mu            sync.Mutex
	launches      []domain.Launch
	launchErrs    int // number of Launches calls that fail before succeeding
	launchCalls   int
	series        map[int][]domain.Measurement
	monthly       []domain.MonthlyPerformance
	monthlyErr    error
	monthlyCalled bool
}

func (m *mockSource) Launches(_ context.Context) ([]domain.Launch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launchCalls++
	if m.launchCalls <= m.launchErrs {
		return nil, errors.New("upstream unavailable")
	}
	return m.launches, nil
}

func (m *mockSource) Measurements(_ context.Context, id int) ([]domain.Measurement, error) {
	s, ok := m.series[id]
	if !ok {
		return nil, domain.ErrLaunchNotFound
	}
	return s, nil
}

func (m *mockSource) MonthlyPerformance(_ context.Context, _, _ int) ([]domain.MonthlyPerformance, error) {
	m.monthlyCalled = true
	return m.monthly, m.monthlyErr
}

func (m *mockSource) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.launchCalls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func launchAt(id int, ts string) domain.Launch {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return domain.Launch{ID: id, LaunchDate: t, Filename: "launch.json"}
}

// scenarioSeries is a short ascent with a ground sample, a surface sample and
// two airborne samples.
func scenarioSeries() []domain.Measurement {
	return []domain.Measurement{
		{Time: domain.Float(0), Height: domain.Float(100), Temperature: domain.Float(290), RelativeHumidity: domain.Float(70), Pressure: domain.Float(1000)},
		{Time: domain.Float(1), Height: domain.Float(110), Temperature: domain.Float(289), RelativeHumidity: domain.Float(65), Pressure: domain.Float(998), WindZonal: domain.Float(3), WindMeridional: domain.Float(4)},
		{Time: domain.Float(2), Height: domain.Float(500), Temperature: domain.Float(280), RelativeHumidity: domain.Float(50), Pressure: domain.Float(950), WindZonal: domain.Float(6), WindMeridional: domain.Float(8)},
		{Time: domain.Float(3), Height: domain.Float(400), Temperature: domain.Float(275), RelativeHumidity: domain.Float(40), Pressure: domain.Float(960)},
	}
}

func newService(src *mockSource) (*dashboard.Service, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return dashboard.New(src, discardLogger(), metrics, time.Minute), metrics
}

// --- tests ---

func TestService_RefreshCatalog_MarksReady(t *testing.T) {
	src := &mockSource{launches: []domain.Launch{
		launchAt(1, "2016-06-01T10:00:00Z"),
		launchAt(2, "2016-06-02T10:00:00Z"),
	}}
	svc, metrics := newService(src)

	require.Error(t, svc.CheckReadiness(context.Background()))

	require.NoError(t, svc.RefreshCatalog(context.Background()))
	require.NoError(t, svc.CheckReadiness(context.Background()))

	latest, ok := svc.Catalog().Latest()
	require.True(t, ok)
	assert.Equal(t, 2, latest.ID)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CatalogLaunches))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CatalogRefreshes.WithLabelValues("success")))
}

func TestService_RefreshCatalog_ErrorKeepsSnapshot(t *testing.T) {
	src := &mockSource{launches: []domain.Launch{launchAt(1, "2016-06-01T10:00:00Z")}}
	svc, metrics := newService(src)
	require.NoError(t, svc.RefreshCatalog(context.Background()))

	src.launchErrs = 2
	src.launchCalls = 0
	err := svc.RefreshCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh catalog")

	assert.Equal(t, 1, svc.Catalog().Len(), "failed refresh must not drop the previous catalog")
	require.NoError(t, svc.CheckReadiness(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CatalogRefreshes.WithLabelValues("error")))
}

func TestService_Profile(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC))
	dashboard.SetClock(fakeClock)
	t.Cleanup(func() { dashboard.SetClock(nil) })

	launch := launchAt(9, "2016-06-01T10:00:00Z")
	src := &mockSource{
		launches: []domain.Launch{launch},
		series:   map[int][]domain.Measurement{9: scenarioSeries()},
	}
	svc, metrics := newService(src)
	require.NoError(t, svc.RefreshCatalog(context.Background()))

	p, err := svc.Profile(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, launch, p.Launch)
	assert.Equal(t, 4, p.MeasurementCount)
	assert.Len(t, p.Reduced, 4, "short series are not reduced")
	assert.Equal(t, fakeClock.Now(), p.ComputedAt)

	wantTemps := []domain.Point{
		{Height: 100, Value: 290 - 273.15},
		{Height: 110, Value: 289 - 273.15},
		{Height: 500, Value: 280 - 273.15},
		{Height: 400, Value: 275 - 273.15},
	}
	if diff := cmp.Diff(wantTemps, p.Datasets.Temperature, cmp.Comparer(func(a, b float64) bool {
		return a-b < 1e-9 && b-a < 1e-9
	})); diff != "" {
		t.Errorf("temperature dataset mismatch (-want +got):\n%s", diff)
	}

	require.NotNil(t, p.Summary)
	require.NotNil(t, p.Summary.MaxAltitude.Height)
	assert.Equal(t, 500.0, *p.Summary.MaxAltitude.Height)
	require.NotNil(t, p.Summary.MaxWind.Speed)
	assert.InDelta(t, 10.0, *p.Summary.MaxWind.Speed, 1e-9)
	require.NotNil(t, p.Summary.SurfaceTemperature)
	assert.InDelta(t, 15.85, *p.Summary.SurfaceTemperature, 1e-9)

	assert.Len(t, p.Statistics, len(domain.Variables))
	assert.Equal(t, 4, p.Statistics[domain.VarPressure].Count)
	assert.Equal(t, 0, p.Statistics[domain.VarMixingRatio].Count)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProfilesComputed))
}

func TestService_Profile_SingleSampleHasNoSummary(t *testing.T) {
	src := &mockSource{series: map[int][]domain.Measurement{
		3: {{Height: domain.Float(10), Temperature: domain.Float(280)}},
	}}
	svc, _ := newService(src)

	p, err := svc.Profile(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, p.Summary)
	assert.Equal(t, 1, p.MeasurementCount)
	assert.Equal(t, 3, p.Launch.ID, "launches missing from the catalog still resolve by ID")
	assert.Equal(t, 1, p.Statistics[domain.VarTemperature].Count)
}

func TestService_Profile_NotFound(t *testing.T) {
	svc, _ := newService(&mockSource{})

	_, err := svc.Profile(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLaunchNotFound)
}

func TestService_Month(t *testing.T) {
	src := &mockSource{
		launches: []domain.Launch{
			launchAt(1, "2016-06-01T10:00:00Z"),
			launchAt(2, "2016-06-01T22:00:00Z"),
			launchAt(3, "2016-07-04T10:00:00Z"),
		},
		monthly: []domain.MonthlyPerformance{{Day: 1, MaxAltitude: 30000, AscentTime: 90}},
	}
	svc, _ := newService(src)
	require.NoError(t, svc.RefreshCatalog(context.Background()))

	view, err := svc.Month(context.Background(), 2016, 6)
	require.NoError(t, err)
	assert.Equal(t, 2016, view.Calendar.Year)
	assert.Equal(t, 6, view.Calendar.Month)
	assert.Equal(t, 3, view.Calendar.LeadingBlanks, "June 1st 2016 was a Wednesday")
	require.Len(t, view.Calendar.Days, 30)
	assert.Equal(t, []int{1, 2}, view.Calendar.Days[0].LaunchIDs)
	assert.Empty(t, view.Calendar.Days[1].LaunchIDs)
	assert.Len(t, view.Performance, 1)
}

func TestService_Month_EmptyPerformance(t *testing.T) {
	svc, _ := newService(&mockSource{})

	view, err := svc.Month(context.Background(), 2020, 2)
	require.NoError(t, err)
	assert.NotNil(t, view.Performance)
	assert.Empty(t, view.Performance)
	assert.Len(t, view.Calendar.Days, 29)
}

func TestService_Month_Invalid(t *testing.T) {
	src := &mockSource{}
	svc, _ := newService(src)

	for _, tc := range []struct{ year, month int }{{2016, 0}, {2016, 13}, {0, 6}, {-1, 1}} {
		_, err := svc.Month(context.Background(), tc.year, tc.month)
		assert.ErrorIs(t, err, dashboard.ErrInvalidMonth, "%d-%d", tc.year, tc.month)
	}
	assert.False(t, src.monthlyCalled, "invalid months must not reach upstream")
}

func TestService_Month_UpstreamError(t *testing.T) {
	svc, _ := newService(&mockSource{monthlyErr: errors.New("status 500")})

	_, err := svc.Month(context.Background(), 2016, 6)
	require.Error(t, err)
	assert.NotErrorIs(t, err, dashboard.ErrInvalidMonth)
}

func TestService_Day(t *testing.T) {
	src := &mockSource{launches: []domain.Launch{
		launchAt(5, "2016-06-01T22:00:00Z"),
		launchAt(4, "2016-06-01T10:00:00Z"),
		launchAt(6, "2016-06-02T01:00:00Z"),
	}}
	svc, _ := newService(src)
	require.NoError(t, svc.RefreshCatalog(context.Background()))

	got := svc.Day(time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].ID)
	assert.Equal(t, 5, got[1].ID)

	assert.Empty(t, svc.Day(time.Date(2016, 6, 3, 0, 0, 0, 0, time.UTC)))
}
