package domain

import "context"

// SoundingSource provides launches and measurements from the sounding API.
type SoundingSource interface {
	// Launches lists every launch in the archive.
	Launches(ctx context.Context) ([]Launch, error)

	// Measurements returns the ordered measurement series of one launch.
	// Unknown launches yield an error wrapping ErrLaunchNotFound.
	Measurements(ctx context.Context, launchID int) ([]Measurement, error)

	// MonthlyPerformance returns the per-day aggregates for a calendar month.
	MonthlyPerformance(ctx context.Context, year, month int) ([]MonthlyPerformance, error)
}
