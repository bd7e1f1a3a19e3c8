// Package units converts raw upstream measurements into display units.
// All functions are total: a nil input yields a fixed default, never an error.
package units

import (
	"math"
	"time"
)

const kelvinOffset = 273.15

// PlaceholderSunTime is rendered when sunrise or sunset is missing from a
// snapshot. It is a fixed marker date, not a meaningful default.
var PlaceholderSunTime = time.Date(2018, time.July, 26, 0, 0, 0, 0, time.UTC)

// Celsius converts Kelvin to Celsius. Returns 0 when kelvin is nil.
func Celsius(kelvin *float64) float64 {
	if kelvin == nil {
		return 0
	}
	return *kelvin - kelvinOffset
}

// Fahrenheit converts Kelvin to Fahrenheit. Returns 0 when kelvin is nil.
func Fahrenheit(kelvin *float64) float64 {
	if kelvin == nil {
		return 0
	}
	return (*kelvin-kelvinOffset)*1.8 + 32
}

// Bounds for FromEpoch: the four-digit years the display layout can render.
var (
	minEpochSeconds = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxEpochSeconds = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// FromEpoch returns the UTC time sec seconds after the Unix epoch.
// Fractional seconds are kept with nanosecond precision. Values outside
// years 1 through 9999 are clamped to that range; NaN maps to the epoch.
func FromEpoch(sec float64) time.Time {
	switch {
	case math.IsNaN(sec):
		sec = 0
	case sec < float64(minEpochSeconds):
		return time.Unix(minEpochSeconds, 0).UTC()
	case sec > float64(maxEpochSeconds):
		return time.Unix(maxEpochSeconds, 0).UTC()
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}

// ObservationTime converts the snapshot's dt field; nil maps to the epoch itself.
func ObservationTime(dt *float64) time.Time {
	if dt == nil {
		return FromEpoch(0)
	}
	return FromEpoch(*dt)
}

// SunTime converts a sunrise or sunset field; nil maps to PlaceholderSunTime.
func SunTime(sec *float64) time.Time {
	if sec == nil {
		return PlaceholderSunTime
	}
	return FromEpoch(*sec)
}
