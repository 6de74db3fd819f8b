package domain

import "math"

// Variable names a profile quantity tracked by ComputeStatistics.
type Variable string

const (
	VarTemperature      Variable = "temperature"       // °C
	VarPressure         Variable = "pressure"          // hPa
	VarRelativeHumidity Variable = "relative_humidity" // %
	VarDewPoint         Variable = "dew_point"         // °C
	VarWindSpeed        Variable = "wind_speed"        // m/s, the FF column
	VarMixingRatio      Variable = "mixing_ratio"      // g/kg
)

// Variables lists the tracked variables in display order.
var Variables = []Variable{
	VarTemperature,
	VarPressure,
	VarRelativeHumidity,
	VarDewPoint,
	VarWindSpeed,
	VarMixingRatio,
}

// VariableStatistics describes the non-missing values of one variable.
// Min, Max, Mean and StandardDeviation are nil when Count is zero.
type VariableStatistics struct {
	Count             int      `json:"count"`
	Min               *float64 `json:"min"`
	Max               *float64 `json:"max"`
	Mean              *float64 `json:"mean"`
	StandardDeviation *float64 `json:"standard_deviation"`
}

// extractors pull a variable's value from a sample, in output units.
var extractors = map[Variable]func(Measurement) *float64{
	VarTemperature:      func(m Measurement) *float64 { return KelvinToCelsius(m.Temperature) },
	VarPressure:         func(m Measurement) *float64 { return m.Pressure },
	VarRelativeHumidity: func(m Measurement) *float64 { return m.RelativeHumidity },
	VarDewPoint:         func(m Measurement) *float64 { return KelvinToCelsius(m.DewPoint) },
	VarWindSpeed:        func(m Measurement) *float64 { return m.WindSpeed },
	VarMixingRatio:      func(m Measurement) *float64 { return m.MixingRatio },
}

// ComputeStatistics returns descriptive statistics for every tracked variable.
// Each variable is computed over its own non-missing values, independently of
// the others. It works on series of any length, including empty ones.
func ComputeStatistics(series []Measurement) map[Variable]VariableStatistics {
	out := make(map[Variable]VariableStatistics, len(Variables))
	for _, v := range Variables {
		out[v] = Describe(values(series, extractors[v]))
	}
	return out
}

// Describe computes min, max, mean and the population standard deviation.
func Describe(xs []float64) VariableStatistics {
	if len(xs) == 0 {
		return VariableStatistics{}
	}

	lo, hi, sum := xs[0], xs[0], 0.0
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
		sum += x
	}
	n := float64(len(xs))
	mean := sum / n

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}

	return VariableStatistics{
		Count:             len(xs),
		Min:               Float(lo),
		Max:               Float(hi),
		Mean:              Float(mean),
		StandardDeviation: Float(math.Sqrt(sq / n)),
	}
}

func values(series []Measurement, get func(Measurement) *float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, m := range series {
		if v := get(m); v != nil {
			out = append(out, *v)
		}
	}
	return out
}
