package soundingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
	"github.com/couchcryptid/sounding-explorer/internal/observability"
)

// Endpoint labels used for metrics and error messages.
const (
	endpointLaunches     = "launches"
	endpointMeasurements = "measurements"
	endpointMonthly      = "monthly"
)

// maxErrorBody caps how much of an error response is echoed into the error.
const maxErrorBody = 512

// Client implements domain.SoundingSource over the sounding HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a sounding API client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// Launches lists every launch, as ordered by the API (newest first).
func (c *Client) Launches(ctx context.Context) ([]domain.Launch, error) {
	var out []domain.Launch
	if err := c.getJSON(ctx, endpointLaunches, "/launches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Measurements returns the measurement series of a launch, ordered by time.
func (c *Client) Measurements(ctx context.Context, launchID int) ([]domain.Measurement, error) {
	var out []domain.Measurement
	if err := c.getJSON(ctx, endpointMeasurements, fmt.Sprintf("/launches/%d", launchID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MonthlyPerformance returns the per-day aggregates for a month.
func (c *Client) MonthlyPerformance(ctx context.Context, year, month int) ([]domain.MonthlyPerformance, error) {
	var out []domain.MonthlyPerformance
	path := fmt.Sprintf("/performance/monthly/%d/%d", year, month)
	if err := c.getJSON(ctx, endpointMonthly, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, dst any) error {
	start := time.Now()
	outcome := "error"
	defer func() {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
		c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && endpoint == endpointMeasurements {
		outcome = "not_found"
		return fmt.Errorf("%s %s: %w", endpoint, path, domain.ErrLaunchNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("sounding API error: %s: status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	outcome = "success"
	c.logger.Debug("sounding API request", "endpoint", endpoint, "path", path, "duration", time.Since(start))
	return nil
}
