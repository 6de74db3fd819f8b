package domain

// DownsampleLimit is the point budget for plotted series.
const DownsampleLimit = 500

// Reduce decimates series with a uniform stride so that roughly limit points
// remain. The stride is max(1, floor(n/limit)) and every index divisible by it
// is kept, so index 0 is always retained and order is preserved. Peaks between
// retained samples can be lost; this is for display, not resampling.
//
// The result is always a new slice, even when no samples are dropped.
func Reduce[T any](series []T, limit int) []T {
	factor := 1
	if limit > 0 && len(series)/limit > 1 {
		factor = len(series) / limit
	}

	out := make([]T, 0, (len(series)+factor-1)/factor)
	for i := 0; i < len(series); i += factor {
		out = append(out, series[i])
	}
	return out
}

// ReduceSeries decimates a measurement series to DownsampleLimit points.
func ReduceSeries(series []Measurement) []Measurement {
	return Reduce(series, DownsampleLimit)
}
