package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/sounding-explorer/internal/dashboard"
	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// Dashboard is the query surface the API serves.
type Dashboard interface {
	sharedobs.ReadinessChecker
	Catalog() *domain.Catalog
	Profile(ctx context.Context, launchID int) (dashboard.Profile, error)
	Month(ctx context.Context, year, month int) (dashboard.MonthView, error)
	Day(day time.Time) []domain.Launch
}

// ChartRenderer draws PNG charts.
type ChartRenderer interface {
	Profile(w io.Writer, title string, ds domain.ProfileDatasets) error
	MonthlyPerformance(w io.Writer, title string, perf []domain.MonthlyPerformance) error
}

// Server exposes the dashboard API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	charts     ChartRenderer
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the dashboard API and operational routes.
func NewServer(addr string, dash Dashboard, charts ChartRenderer, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		dash:    dash,
		charts:  charts,
		metrics: metrics,
		logger:  logger,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.instrument(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(dash))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/launches", s.handleLaunches)
	mux.HandleFunc("GET /api/launches/latest", s.handleLatest)
	mux.HandleFunc("GET /api/launches/{id}/profile", s.handleProfile)
	mux.HandleFunc("GET /api/launches/{id}/profile.png", s.handleProfileChart)
	mux.HandleFunc("GET /api/years", s.handleYears)
	mux.HandleFunc("GET /api/days/{date}", s.handleDay)
	mux.HandleFunc("GET /api/calendar/{year}/{month}", s.handleCalendar)
	mux.HandleFunc("GET /api/calendar/{year}/{month}/performance.png", s.handlePerformanceChart)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
