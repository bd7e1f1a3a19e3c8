package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-snapshot/internal/observability"
)

// ErrTransport wraps every failure to obtain a response body: DNS, connect,
// timeout, cancellation or a truncated read.
var ErrTransport = errors.New("transport failure")

const fetchTimeout = 10 * time.Second

// FetchResult is the single value delivered by Fetch. Body is only meaningful when Err is nil.
type FetchResult struct {
	Body []byte
	Err  error
}

// WeatherFetcher issues one GET per call and delivers its outcome asynchronously.
type WeatherFetcher interface {
	Fetch(ctx context.Context, rawURL string) <-chan FetchResult
}

type OpenWeatherClient struct {
	client *http.Client
	logger *zap.Logger
}

func NewOpenWeatherClient(logger *zap.Logger) *OpenWeatherClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenWeatherClient{
		client: &http.Client{
			Timeout: fetchTimeout,
		},
		logger: logger,
	}
}

// Fetch starts a single GET for rawURL and returns a channel that receives
// exactly one FetchResult and is then closed. The request is never retried.
// The response status and headers are not inspected; any body is returned as-is.
func (c *OpenWeatherClient) Fetch(ctx context.Context, rawURL string) <-chan FetchResult {
	out := make(chan FetchResult, 1)
	go func() {
		defer close(out)
		body, err := c.get(ctx, rawURL)
		out <- FetchResult{Body: body, Err: err}
	}()
	return out
}

func (c *OpenWeatherClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIDuration.WithLabelValues("error").Observe(duration)
		c.logger.Debug("weather api request failed", zap.String("host", req.URL.Host), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start).Seconds()
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues("error").Inc()
		observability.WeatherAPIDuration.WithLabelValues("error").Observe(duration)
		return nil, fmt.Errorf("%w: read response body: %w", ErrTransport, err)
	}

	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(status).Observe(duration)
	c.logger.Debug("weather api response",
		zap.String("host", req.URL.Host),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Float64("duration_seconds", duration),
	)
	return body, nil
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
