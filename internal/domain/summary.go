package domain

import "math"

// kelvinOffset converts between kelvin and degrees Celsius.
const kelvinOffset = 273.15

// surfaceIndex is the sample treated as the surface reading. The first sample
// is usually a pre-launch ground artifact.
const surfaceIndex = 1

// AltitudeRecord is the highest sample of an ascent (the burst point).
type AltitudeRecord struct {
	Height   *float64 `json:"height"`
	Pressure *float64 `json:"pressure"`
}

// TemperatureRecord is the coldest sample of an ascent.
type TemperatureRecord struct {
	Celsius *float64 `json:"celsius"`
	Height  *float64 `json:"height"`
}

// WindRecord is the sample with the largest horizontal wind magnitude.
type WindRecord struct {
	Speed      *float64 `json:"speed"`
	Zonal      *float64 `json:"zonal"`
	Meridional *float64 `json:"meridional"`
	Height     *float64 `json:"height"`
}

// LaunchSummary holds the launch-level facts shown next to the profile chart.
// Any field is nil when its source data is absent.
type LaunchSummary struct {
	SurfaceTemperature      *float64          `json:"surface_temperature"` // °C
	SurfaceRelativeHumidity *float64          `json:"surface_relative_humidity"`
	MaxAltitude             AltitudeRecord    `json:"max_altitude"`
	MinTemperature          TemperatureRecord `json:"min_temperature"`
	MaxWind                 WindRecord        `json:"max_wind"`
	AscentTimeSeconds       *float64          `json:"ascent_time_seconds"`
	AscentSpeed             *float64          `json:"ascent_speed"` // m/s
}

// AscentTimeMinutes reports the ascent time in minutes, or nil when unknown.
func (s LaunchSummary) AscentTimeMinutes() *float64 {
	if s.AscentTimeSeconds == nil {
		return nil
	}
	return Float(*s.AscentTimeSeconds / 60)
}

// KelvinToCelsius converts a temperature. A reading of exactly 0 K is treated
// as missing, matching the archive's historical handling of zero values.
func KelvinToCelsius(k *float64) *float64 {
	if k == nil || *k == 0 {
		return nil
	}
	return Float(*k - kelvinOffset)
}

// Summarize derives the LaunchSummary of a measurement series. It returns
// false when the series has fewer than two samples, since the surface reading
// lives at index 1. The input is never modified.
func Summarize(series []Measurement) (LaunchSummary, bool) {
	if len(series) <= surfaceIndex {
		return LaunchSummary{}, false
	}

	surface := series[surfaceIndex]
	summary := LaunchSummary{
		SurfaceTemperature:      KelvinToCelsius(surface.Temperature),
		SurfaceRelativeHumidity: copyFloat(surface.RelativeHumidity),
		AscentTimeSeconds:       maxTime(series),
	}

	if m, ok := maxAltitudeSample(series); ok {
		summary.MaxAltitude = AltitudeRecord{
			Height:   copyFloat(m.Height),
			Pressure: copyFloat(m.Pressure),
		}
	}

	if m, ok := minTemperatureSample(series); ok {
		summary.MinTemperature = TemperatureRecord{
			Celsius: KelvinToCelsius(m.Temperature),
			Height:  copyFloat(m.Height),
		}
	}

	if m, speed, ok := maxWindSample(series); ok {
		summary.MaxWind = WindRecord{
			Speed:      Float(speed),
			Zonal:      copyFloat(m.WindZonal),
			Meridional: copyFloat(m.WindMeridional),
			Height:     copyFloat(m.Height),
		}
	}

	// A zero ascent time comes from single-timestamp data; report no speed
	// rather than an infinite one.
	if h, t := summary.MaxAltitude.Height, summary.AscentTimeSeconds; h != nil && t != nil && *t != 0 {
		summary.AscentSpeed = Float(*h / *t)
	}

	return summary, true
}

// maxAltitudeSample returns the first sample with the greatest height.
func maxAltitudeSample(series []Measurement) (Measurement, bool) {
	var best Measurement
	found := false
	for _, m := range series {
		if m.Height == nil {
			continue
		}
		if !found || *m.Height > *best.Height {
			best = m
			found = true
		}
	}
	return best, found
}

// minTemperatureSample returns the first sample with the lowest temperature.
// Zero-kelvin readings count as missing.
func minTemperatureSample(series []Measurement) (Measurement, bool) {
	var best Measurement
	found := false
	for _, m := range series {
		if m.Temperature == nil || *m.Temperature == 0 {
			continue
		}
		if !found || *m.Temperature < *best.Temperature {
			best = m
			found = true
		}
	}
	return best, found
}

// maxWindSample returns the first sample with the largest u/v magnitude and
// that magnitude. Samples missing either component are skipped.
func maxWindSample(series []Measurement) (Measurement, float64, bool) {
	var (
		best      Measurement
		bestSpeed float64
		found     bool
	)
	for _, m := range series {
		if m.WindZonal == nil || m.WindMeridional == nil {
			continue
		}
		u, v := *m.WindZonal, *m.WindMeridional
		speed := math.Sqrt(u*u + v*v)
		if !found || speed > bestSpeed {
			best, bestSpeed, found = m, speed, true
		}
	}
	return best, bestSpeed, found
}

// maxTime returns the largest reported elapsed time, or nil if none is reported.
func maxTime(series []Measurement) *float64 {
	var out *float64
	for _, m := range series {
		if m.Time == nil {
			continue
		}
		if out == nil || *m.Time > *out {
			out = Float(*m.Time)
		}
	}
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}
