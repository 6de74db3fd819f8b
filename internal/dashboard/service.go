package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// ErrInvalidMonth is returned for a calendar month outside 1-12 or a non-positive year.
var ErrInvalidMonth = errors.New("invalid month")

// Profile is everything the dashboard shows for one launch.
type Profile struct {
	Launch           domain.Launch                                 `json:"launch"`
	MeasurementCount int                                           `json:"measurement_count"`
	Reduced          []domain.Measurement                          `json:"reduced"`
	Datasets         domain.ProfileDatasets                        `json:"datasets"`
	Summary          *domain.LaunchSummary                         `json:"summary"` // nil below two samples
	Statistics       map[domain.Variable]domain.VariableStatistics `json:"statistics"`
	ComputedAt       time.Time                                     `json:"computed_at"`
}

// MonthView combines the calendar grid with the upstream per-day aggregates.
type MonthView struct {
	Calendar    domain.MonthCalendar        `json:"calendar"`
	Performance []domain.MonthlyPerformance `json:"performance"`
}

// Service answers dashboard queries against a SoundingSource. The launch
// catalog is refreshed in the background by Run; profiles are computed fresh
// on every call.
type Service struct {
	source   domain.SoundingSource
	logger   *slog.Logger
	metrics  *observability.Metrics
	interval time.Duration

	catalog atomic.Pointer[domain.Catalog]
	ready   atomic.Bool
}

// New creates a Service that refreshes its catalog every interval.
func New(source domain.SoundingSource, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Service {
	s := &Service{
		source:   source,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
	}
	s.catalog.Store(domain.NewCatalog(nil))
	return s
}

// CheckReadiness returns nil once the catalog has been loaded at least once.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("launch catalog has not been loaded yet")
	}
	return nil
}

// Catalog returns the current catalog snapshot.
func (s *Service) Catalog() *domain.Catalog {
	return s.catalog.Load()
}

// RefreshCatalog fetches the launch list and swaps in a new catalog.
func (s *Service) RefreshCatalog(ctx context.Context) error {
	launches, err := s.source.Launches(ctx)
	if err != nil {
		s.metrics.CatalogRefreshes.WithLabelValues("error").Inc()
		return fmt.Errorf("refresh catalog: %w", err)
	}

	cat := domain.NewCatalog(launches)
	s.catalog.Store(cat)
	s.ready.Store(true)

	s.metrics.CatalogRefreshes.WithLabelValues("success").Inc()
	s.metrics.CatalogLaunches.Set(float64(cat.Len()))
	s.logger.Info("catalog refreshed", "launches", cat.Len())
	return nil
}

// Profile fetches a launch's measurements and derives the reduced series,
// chart datasets, summary and per-variable statistics.
func (s *Service) Profile(ctx context.Context, launchID int) (Profile, error) {
	series, err := s.source.Measurements(ctx, launchID)
	if err != nil {
		return Profile{}, fmt.Errorf("load launch %d: %w", launchID, err)
	}

	launch, ok := s.Catalog().Launch(launchID)
	if !ok {
		// The catalog may lag the archive; the series itself is authoritative.
		launch = domain.Launch{ID: launchID}
	}

	start := time.Now()
	reduced := domain.ReduceSeries(series)
	p := Profile{
		Launch:           launch,
		MeasurementCount: len(series),
		Reduced:          reduced,
		Datasets:         domain.BuildProfileDatasets(reduced),
		Statistics:       domain.ComputeStatistics(series),
		ComputedAt:       clock.Now().UTC(),
	}
	if summary, ok := domain.Summarize(series); ok {
		p.Summary = &summary
	}

	s.metrics.ProfilesComputed.Inc()
	s.metrics.ProfileSeriesLength.Observe(float64(len(series)))
	s.metrics.ProfileComputeDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("profile computed", "launch_id", launchID, "measurements", len(series), "reduced", len(reduced))
	return p, nil
}

// Month returns the calendar grid and upstream performance for a month.
func (s *Service) Month(ctx context.Context, year, month int) (MonthView, error) {
	if year <= 0 || month < 1 || month > 12 {
		return MonthView{}, fmt.Errorf("%w: %d-%d", ErrInvalidMonth, year, month)
	}

	perf, err := s.source.MonthlyPerformance(ctx, year, month)
	if err != nil {
		return MonthView{}, fmt.Errorf("load performance for %d-%02d: %w", year, month, err)
	}
	if perf == nil {
		perf = []domain.MonthlyPerformance{}
	}

	return MonthView{
		Calendar:    s.Catalog().Month(year, time.Month(month)),
		Performance: perf,
	}, nil
}

// Day returns the launches on the UTC date of day, earliest first.
func (s *Service) Day(day time.Time) []domain.Launch {
	return s.Catalog().LaunchesOn(day)
}
