//go:build integration
// +build integration

package testhelpers

import (
	"os"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/kjstillabower/weather-snapshot/internal/client"
	"github.com/kjstillabower/weather-snapshot/internal/config"
	"github.com/kjstillabower/weather-snapshot/internal/service"
)

// GetIntegrationConfig builds a config for live-API tests from the environment.
// Skips the test if WEATHER_API_KEY is not set.
func GetIntegrationConfig(t *testing.T) *config.Config {
	t.Helper()
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}

	apiURL := os.Getenv("WEATHER_API_URL")
	if apiURL == "" {
		apiURL = config.DefaultWeatherAPIURL
	}
	location := os.Getenv("WEATHER_LOCATION")
	if location == "" {
		location = config.DefaultLocation
	}

	return &config.Config{
		WeatherAPIKey: apiKey,
		WeatherAPIURL: apiURL,
		Location:      location,
	}
}

// SetupIntegrationService wires a real client and service that log to the test output.
func SetupIntegrationService(t *testing.T, cfg *config.Config) *service.WeatherService {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return service.NewWeatherService(client.NewOpenWeatherClient(logger), cfg, logger)
}
