package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/sounding-explorer/internal/dashboard"
	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/render"
)

const dateLayout = "2006-01-02"

func (s *Server) handleLaunches(w http.ResponseWriter, r *http.Request) {
	launches := s.dash.Catalog().Launches()

	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", raw))
			return
		}
		launches = filterYear(launches, year)
	}

	writeJSON(w, http.StatusOK, launches)
}

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	latest, ok := s.dash.Catalog().Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no launches available")
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	years := s.dash.Catalog().Years()
	if years == nil {
		years = []int{}
	}
	writeJSON(w, http.StatusOK, years)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("date")
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", raw))
		return
	}
	writeJSON(w, http.StatusOK, s.dash.Day(day))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	view, ok := s.month(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePerformanceChart(w http.ResponseWriter, r *http.Request) {
	view, ok := s.month(w, r)
	if !ok {
		return
	}

	title := time.Date(view.Calendar.Year, time.Month(view.Calendar.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	var buf bytes.Buffer
	if err := s.charts.MonthlyPerformance(&buf, title, view.Performance); err != nil {
		s.chartError(w, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleProfileChart(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profile(w, r)
	if !ok {
		return
	}

	title := fmt.Sprintf("Launch %d", profile.Launch.ID)
	if !profile.Launch.LaunchDate.IsZero() {
		title += " " + profile.Launch.LaunchDate.UTC().Format("2006-01-02 15:04 UTC")
	}
	var buf bytes.Buffer
	if err := s.charts.Profile(&buf, title, profile.Datasets); err != nil {
		s.chartError(w, err)
		return
	}
	writePNG(w, buf.Bytes())
}

// month resolves the {year}/{month} path values and loads the month view,
// writing the error response itself when it fails.
func (s *Server) month(w http.ResponseWriter, r *http.Request) (dashboard.MonthView, bool) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", r.PathValue("year")))
		return dashboard.MonthView{}, false
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid month %q", r.PathValue("month")))
		return dashboard.MonthView{}, false
	}

	view, err := s.dash.Month(r.Context(), year, month)
	switch {
	case errors.Is(err, dashboard.ErrInvalidMonth):
		writeError(w, http.StatusBadRequest, err.Error())
		return dashboard.MonthView{}, false
	case err != nil:
		s.upstreamError(w, r, err)
		return dashboard.MonthView{}, false
	}
	return view, true
}

// profile resolves the {id} path value and computes the launch profile,
// writing the error response itself when it fails.
func (s *Server) profile(w http.ResponseWriter, r *http.Request) (dashboard.Profile, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid launch id %q", raw))
		return dashboard.Profile{}, false
	}

	profile, err := s.dash.Profile(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrLaunchNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("launch %d not found", id))
		return dashboard.Profile{}, false
	case err != nil:
		s.upstreamError(w, r, err)
		return dashboard.Profile{}, false
	}
	return profile, true
}

func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("upstream request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadGateway, "sounding API unavailable")
}

func (s *Server) chartError(w http.ResponseWriter, err error) {
	if errors.Is(err, render.ErrNoData) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("chart rendering failed", "error", err)
	writeError(w, http.StatusInternalServerError, "chart rendering failed")
}

func filterYear(launches []domain.Launch, year int) []domain.Launch {
	out := make([]domain.Launch, 0, len(launches))
	for _, l := range launches {
		if l.LaunchDate.UTC().Year() == year {
			out = append(out, l)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client may have gone away
}
