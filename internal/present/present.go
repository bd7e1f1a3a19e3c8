// Package present renders a weather snapshot as human-readable lines.
// Missing values are substituted with defaults here and nowhere else.
package present

import (
	"fmt"
	"io"
	"time"

	"github.com/kjstillabower/weather-snapshot/internal/models"
	"github.com/kjstillabower/weather-snapshot/internal/units"
)

// MissingKeyMessage is the only line printed when no API key is configured.
const MissingKeyMessage = "Not so fast, get your API Key first"

const (
	timeLayout      = "2006-01-02 15:04:05 -0700"
	unknownCity     = "City not found"
	unknownSkyState = "no info"
)

// Lines returns the summary for snap in display order. A nil snap yields no
// lines; a missing API key yields MissingKeyMessage alone.
func Lines(snap *models.Snapshot, apiKeyConfigured bool) []string {
	if !apiKeyConfigured {
		return []string{MissingKeyMessage}
	}
	if snap == nil {
		return nil
	}

	var main models.Main
	if snap.Main != nil {
		main = *snap.Main
	}
	var sys models.Sys
	if snap.Sys != nil {
		sys = *snap.Sys
	}

	lines := []string{"City: " + stringOr(snap.CityName, unknownCity)}
	for _, w := range snap.Weather {
		lines = append(lines, "Sky: "+stringOr(w.Description, unknownSkyState))
	}
	lines = append(lines,
		fmt.Sprintf("Temperature Celsius: %v", units.Celsius(main.TempKelvin)),
		fmt.Sprintf("Temperature Kelvin: %v", floatOrZero(main.TempKelvin)),
		fmt.Sprintf("Temperature Fahrenheit: %v", units.Fahrenheit(main.TempKelvin)),
		fmt.Sprintf("Humidity: %d%%", intOrZero(main.Humidity)),
		fmt.Sprintf("Min Temperature: %v", units.Celsius(main.MinTempKelvin)),
		fmt.Sprintf("Max Temperature: %v", units.Celsius(main.MaxTempKelvin)),
		"Date of Data Refresh: "+formatTime(units.ObservationTime(snap.Dt)),
		"Sunrise: "+formatTime(units.SunTime(sys.Sunrise)),
		"Sunset: "+formatTime(units.SunTime(sys.Sunset)),
	)
	return lines
}

// Write prints Lines(snap, apiKeyConfigured) to w, one per line.
func Write(w io.Writer, snap *models.Snapshot, apiKeyConfigured bool) error {
	for _, line := range Lines(snap, apiKeyConfigured) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
