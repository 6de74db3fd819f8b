package domain

// Point is one (altitude, value) pair of a profile chart.
type Point struct {
	Height float64 `json:"x"`
	Value  float64 `json:"y"`
}

// ProfileDatasets are the plotted vertical profiles of a launch.
type ProfileDatasets struct {
	Temperature      []Point `json:"temperature"` // °C
	Pressure         []Point `json:"pressure"`    // hPa
	RelativeHumidity []Point `json:"relative_humidity"`
}

// BuildProfileDatasets pairs each variable with altitude, skipping samples
// where either is missing. Pass the reduced series, not the raw one.
func BuildProfileDatasets(series []Measurement) ProfileDatasets {
	return ProfileDatasets{
		Temperature:      points(series, func(m Measurement) *float64 { return KelvinToCelsius(m.Temperature) }),
		Pressure:         points(series, func(m Measurement) *float64 { return m.Pressure }),
		RelativeHumidity: points(series, func(m Measurement) *float64 { return m.RelativeHumidity }),
	}
}

func points(series []Measurement, get func(Measurement) *float64) []Point {
	out := make([]Point, 0, len(series))
	for _, m := range series {
		if m.Height == nil {
			continue
		}
		if v := get(m); v != nil {
			out = append(out, Point{Height: *m.Height, Value: *v})
		}
	}
	return out
}
