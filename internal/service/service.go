package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-snapshot/internal/client"
	"github.com/kjstillabower/weather-snapshot/internal/config"
	"github.com/kjstillabower/weather-snapshot/internal/models"
	"github.com/kjstillabower/weather-snapshot/internal/observability"
)

var errNoFetchResult = errors.New("fetch completed without a result")

// WeatherService runs the build-fetch-decode pipeline and owns the single
// current-snapshot slot. The slot is replaced wholesale, never patched.
type WeatherService struct {
	fetcher  client.WeatherFetcher
	baseURL  string
	location string
	apiKey   string
	logger   *zap.Logger

	mu      sync.RWMutex
	current *models.Snapshot
}

// NewWeatherService creates a WeatherService for the location and credentials in cfg.
func NewWeatherService(fetcher client.WeatherFetcher, cfg *config.Config, logger *zap.Logger) *WeatherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherService{
		fetcher:  fetcher,
		baseURL:  cfg.WeatherAPIURL,
		location: cfg.Location,
		apiKey:   cfg.WeatherAPIKey,
		logger:   logger,
	}
}

// Refresh performs one fetch and decode. On transport failure the slot is left
// as it was; on decode failure it is left empty. Nothing is retried.
func (s *WeatherService) Refresh(ctx context.Context) error {
	err := s.refresh(ctx)
	if err != nil {
		observability.RecordError(string(client.CategorizeError(err)))
	}
	return err
}

func (s *WeatherService) refresh(ctx context.Context) error {
	rawURL, err := client.BuildURL(s.baseURL, s.location, s.apiKey)
	if err != nil {
		return fmt.Errorf("build request url: %w", err)
	}

	s.logger.Debug("fetching current weather", zap.String("location", s.location))
	result, ok := <-s.fetcher.Fetch(ctx, rawURL)
	if !ok {
		return fmt.Errorf("fetch weather for %s: %w", s.location, errNoFetchResult)
	}
	if result.Err != nil {
		return fmt.Errorf("fetch weather for %s: %w", s.location, result.Err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil

	snap, err := client.DecodeSnapshot(result.Body)
	if err != nil {
		observability.SnapshotDecodesTotal.WithLabelValues("error").Inc()
		return err
	}
	observability.SnapshotDecodesTotal.WithLabelValues("success").Inc()
	observability.LastSuccessTimestamp.SetToCurrentTime()

	s.current = &snap
	s.logger.Info("snapshot decoded",
		zap.String("location", s.location),
		zap.Int("status", intOrZero(snap.StatusCode)),
		zap.Int("conditions", len(snap.Weather)),
	)
	return nil
}

// Current returns the most recently decoded snapshot, if any.
func (s *WeatherService) Current() (models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Snapshot{}, false
	}
	return *s.current, true
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
