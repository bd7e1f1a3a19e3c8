package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry *prometheus.Registry

	// OpenWeatherMap API call outcomes, labelled by HTTP status class.
	WeatherAPICallsTotal *prometheus.CounterVec

	// Upstream latency for the single fetch of a run.
	WeatherAPIDuration *prometheus.HistogramVec

	// Failed runs by client.ErrorCategory.
	WeatherAPIErrorsTotal *prometheus.CounterVec

	// Decode attempts by result (success, error).
	SnapshotDecodesTotal *prometheus.CounterVec

	// Unix time of the last successful snapshot; lets textfile consumers alert on staleness.
	LastSuccessTimestamp prometheus.Gauge
)

func init() {
	registry = prometheus.NewRegistry()

	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of OpenWeatherMap API calls",
		},
		[]string{"status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "OpenWeatherMap API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	WeatherAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiErrorsTotal",
			Help: "Total number of failed weather snapshot runs by error category",
		},
		[]string{"category"},
	)
	SnapshotDecodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshotDecodesTotal",
			Help: "Total number of weather payload decode attempts",
		},
		[]string{"result"},
	)
	LastSuccessTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshotLastSuccessTimestampSeconds",
			Help: "Unix time of the last successfully decoded snapshot",
		},
	)

	registry.MustRegister(
		WeatherAPICallsTotal, WeatherAPIDuration, WeatherAPIErrorsTotal,
		SnapshotDecodesTotal, LastSuccessTimestamp,
	)
}

// RecordError counts a failed run under the given category label.
func RecordError(category string) {
	if category == "" {
		return
	}
	WeatherAPIErrorsTotal.WithLabelValues(category).Inc()
}

// WriteMetrics writes the registry to path in the text exposition format,
// for pickup by the node_exporter textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
