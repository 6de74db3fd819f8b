// Package render draws dashboard charts as PNG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/sounding-explorer/internal/domain"
)

// ErrNoData is returned when there is nothing plottable.
var ErrNoData = errors.New("no plottable data")

var (
	temperatureColor = drawing.ColorFromHex("d62728")
	pressureColor    = drawing.ColorFromHex("1f77b4")
	humidityColor    = drawing.ColorFromHex("2ca02c")
	barColor         = drawing.ColorFromHex("4c72b0")
)

// Renderer draws charts at a fixed pixel size.
type Renderer struct {
	width  int
	height int
}

// New returns a Renderer producing width x height images.
func New(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// Profile draws temperature on the primary axis and pressure and relative
// humidity on the secondary axis, all against altitude. Series with fewer than
// two points are left out.
func (r *Renderer) Profile(w io.Writer, title string, ds domain.ProfileDatasets) error {
	var (
		series  []chart.Series
		xs      span
		primary span
		second  span
	)

	add := func(name string, pts []domain.Point, color drawing.Color, axis chart.YAxisType) {
		if len(pts) < 2 {
			return
		}
		s := chart.ContinuousSeries{
			Name:    name,
			XValues: make([]float64, len(pts)),
			YValues: make([]float64, len(pts)),
			YAxis:   axis,
			Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
		}
		for i, p := range pts {
			s.XValues[i] = p.Height
			s.YValues[i] = p.Value
			xs.include(p.Height)
			if axis == chart.YAxisSecondary {
				second.include(p.Value)
			} else {
				primary.include(p.Value)
			}
		}
		series = append(series, s)
	}

	add("Temperature (°C)", ds.Temperature, temperatureColor, chart.YAxisPrimary)
	add("Pressure (hPa)", ds.Pressure, pressureColor, chart.YAxisSecondary)
	add("Relative humidity (%)", ds.RelativeHumidity, humidityColor, chart.YAxisSecondary)

	if len(series) == 0 {
		return ErrNoData
	}

	ch := chart.Chart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Altitude (m)", Range: xs.toRange()},
		YAxis:      chart.YAxis{Name: "°C", Range: primary.toRange()},
		YAxisSecondary: chart.YAxis{
			Name:  "hPa / %",
			Range: second.toRange(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render profile chart: %w", err)
	}
	return nil
}

// MonthlyPerformance draws one bar per day with the day's maximum altitude.
func (r *Renderer) MonthlyPerformance(w io.Writer, title string, perf []domain.MonthlyPerformance) error {
	if len(perf) == 0 {
		return ErrNoData
	}

	var ys span
	ys.include(0)
	bars := make([]chart.Value, 0, len(perf))
	for _, p := range perf {
		ys.include(p.MaxAltitude)
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(p.Day),
			Value: p.MaxAltitude,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}

	// Bars and gaps fill about three quarters of the width.
	barWidth := max(2, r.width/(2*len(bars)))
	barSpacing := max(1, barWidth/2)

	bc := chart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis:      chart.YAxis{Name: "Max altitude (m)", Range: ys.toRange()},
		Bars:       bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render performance chart: %w", err)
	}
	return nil
}

// span tracks the extent of plotted values. go-chart refuses zero-width
// ranges, so degenerate spans are widened before use.
type span struct {
	min, max float64
	set      bool
}

func (s *span) include(v float64) {
	if !s.set {
		s.min, s.max, s.set = v, v, true
		return
	}
	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
}

func (s span) toRange() *chart.ContinuousRange {
	if !s.set {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if s.min == s.max {
		return &chart.ContinuousRange{Min: s.min - 1, Max: s.max + 1}
	}
	return &chart.ContinuousRange{Min: s.min, Max: s.max}
}
