package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLaunchNotFound is returned by a SoundingSource when the launch ID is unknown upstream.
var ErrLaunchNotFound = errors.New("launch not found")

// Measurement is one telemetry sample from a radiosonde ascent. Every field is
// optional: a nil pointer means the instrument did not report the value.
// JSON field names follow the upstream sounding API.
type Measurement struct {
	ID       int `json:"id,omitempty"`
	LaunchID int `json:"launch_id,omitempty"`

	Time             *float64 `json:"time"`   // seconds since launch
	Height           *float64 `json:"Height"` // meters
	Temperature      *float64 `json:"T"`      // kelvin
	RelativeHumidity *float64 `json:"RH"`     // percent
	Pressure         *float64 `json:"P"`      // hPa
	WindZonal        *float64 `json:"u"`      // m/s, positive eastward
	WindMeridional   *float64 `json:"v"`      // m/s, positive northward
	WindSpeed        *float64 `json:"FF"`     // m/s, reported independently of u/v
	WindDirection    *float64 `json:"DD"`     // degrees
	MixingRatio      *float64 `json:"MR"`     // g/kg
	DewPoint         *float64 `json:"TD"`     // kelvin
	Longitude        *float64 `json:"Lon"`
	Latitude         *float64 `json:"Lat"`

	// Raw instrument columns carried through from the sounding files.
	ScaledPressure *float64 `json:"Pscl,omitempty"`
	Azimuth        *float64 `json:"AZ,omitempty"`
	Range          *float64 `json:"Range,omitempty"`
	RadarHeight    *float64 `json:"RadarH,omitempty"`
	SpuKey         *int     `json:"SpuKey,omitempty"`
	UsrKey         *int     `json:"UsrKey,omitempty"`
}

// Launch is one radiosonde balloon ascent as listed by the sounding API.
type Launch struct {
	ID         int       `json:"id"`
	LaunchDate time.Time `json:"launch_date"`
	Filename   string    `json:"filename"`
}

// launchDateLayouts are tried in order. The upstream API serializes naive
// datetimes without a zone; those are UTC by convention of the sounding files.
var launchDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON accepts RFC 3339 and zone-less ISO 8601 launch dates.
func (l *Launch) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         int    `json:"id"`
		LaunchDate string `json:"launch_date"`
		Filename   string `json:"filename"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode launch: %w", err)
	}

	ts, err := ParseLaunchDate(raw.LaunchDate)
	if err != nil {
		return err
	}

	l.ID = raw.ID
	l.LaunchDate = ts
	l.Filename = raw.Filename
	return nil
}

// ParseLaunchDate parses an upstream launch timestamp, returning it in UTC.
func ParseLaunchDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range launchDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse launch date %q: unsupported format", s)
}

// MonthlyPerformance is one precomputed per-day aggregate from the sounding API.
type MonthlyPerformance struct {
	Day         int     `json:"day"`
	MaxAltitude float64 `json:"max_altitude"` // meters
	AscentTime  float64 `json:"ascent_time"`  // minutes
}

// Float returns a pointer to v. It keeps fixtures and tests readable.
func Float(v float64) *float64 {
	return &v
}
