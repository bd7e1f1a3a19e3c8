package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-snapshot/internal/client"
	"github.com/kjstillabower/weather-snapshot/internal/config"
	"github.com/kjstillabower/weather-snapshot/internal/observability"
	"github.com/kjstillabower/weather-snapshot/internal/present"
	"github.com/kjstillabower/weather-snapshot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := run(ctx, cfg, client.NewOpenWeatherClient(logger), logger, os.Stdout)
	stop()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "weather-snapshot: %v\n", runErr)
	}
	if err := observability.FlushTelemetry(context.Background(), logger, cfg.MetricsTextfile); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry flush: %v\n", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}

// run performs one fetch-decode-print cycle. Without an API key no request
// is made and only the diagnostic line is printed.
func run(ctx context.Context, cfg *config.Config, fetcher client.WeatherFetcher, logger *zap.Logger, out io.Writer) error {
	if !cfg.HasAPIKey() {
		logger.Warn("no weather API key configured; set WEATHER_API_KEY or config/secrets.yaml weather_api_key")
		return present.Write(out, nil, false)
	}

	weatherService := service.NewWeatherService(fetcher, cfg, logger)
	if err := weatherService.Refresh(ctx); err != nil {
		logger.Error("weather snapshot failed",
			zap.String("location", cfg.Location),
			zap.String("category", string(client.CategorizeError(err))),
			zap.Error(err),
		)
		return err
	}

	snap, ok := weatherService.Current()
	if !ok {
		return fmt.Errorf("no snapshot after refresh")
	}
	return present.Write(out, &snap, true)
}
