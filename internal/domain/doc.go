// Package domain models radiosonde sounding data and the transforms the
// dashboard applies to it.
//
// # Data Source
//
// Soundings come from Vaisala RS92-SGP radiosondes launched from El Alto,
// La Paz. The upstream sounding API serves one ordered measurement series per
// launch (sorted by elapsed time) plus precomputed monthly aggregates. This
// package never talks to the API; see [SoundingSource].
//
// # Measurement Conventions
//
// Field names follow the instrument file columns:
//
//	time     seconds since launch
//	Height   geopotential altitude, meters
//	T, TD    temperature and dew point, kelvin
//	RH       relative humidity, percent
//	P        pressure, hPa
//	u, v     zonal and meridional wind components, m/s
//	FF, DD   reported wind speed (m/s) and direction (degrees)
//	MR       mixing ratio, g/kg
//
// Any field may be missing. Missing values are excluded from the aggregate
// they would feed and never read as zero.
//
// FF is reported by the ground station and is not recomputed from u and v.
// The max-wind record uses the u/v magnitude; wind-speed statistics use FF.
//
// The sample at index 1 is the surface reading. Index 0 is frequently a
// pre-launch ground artifact.
//
// Temperatures are shown in Celsius. A kelvin value of exactly 0 is treated as
// missing, consistent with how the archive has always been displayed. 0 K
// never occurs in a real sounding.
//
// # Reduction and Summary
//
// [ReduceSeries] keeps every k-th sample, k = max(1, floor(n/500)), for
// plotting. [Summarize] derives launch facts (burst point, coldest point,
// strongest wind, ascent time and speed) and [ComputeStatistics] derives
// min/max/mean/population standard deviation per variable. All three are
// pure and safe for concurrent use.
package domain
