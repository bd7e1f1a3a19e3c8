package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-snapshot/internal/client"
	"github.com/kjstillabower/weather-snapshot/internal/config"
)

// mockFetcher replays one queued result per Fetch call and records requested URLs.
type mockFetcher struct {
	results []client.FetchResult
	urls    []string
	noValue bool
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string) <-chan client.FetchResult {
	m.urls = append(m.urls, rawURL)
	ch := make(chan client.FetchResult, 1)
	if !m.noValue {
		res := m.results[0]
		m.results = m.results[1:]
		ch <- res
	}
	close(ch)
	return ch
}

func testConfig() *config.Config {
	return &config.Config{
		WeatherAPIKey: "abc",
		WeatherAPIURL: "https://api.example.com/weather?",
		Location:      "London,uk",
	}
}

func body(s string) client.FetchResult {
	return client.FetchResult{Body: []byte(s)}
}

func TestWeatherService_Refresh_Success(t *testing.T) {
	fetcher := &mockFetcher{results: []client.FetchResult{body(`{"name":"London","cod":200,"main":{"temp":300}}`)}}
	svc := NewWeatherService(fetcher, testConfig(), zap.NewNop())

	if _, ok := svc.Current(); ok {
		t.Fatal("Current() before Refresh should be empty")
	}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if len(fetcher.urls) != 1 {
		t.Fatalf("Fetch called %d times, want 1", len(fetcher.urls))
	}
	u, err := url.Parse(fetcher.urls[0])
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	if u.RawQuery != "q=London,uk&APPID=abc" {
		t.Errorf("RawQuery = %q, want q=London,uk&APPID=abc", u.RawQuery)
	}

	snap, ok := svc.Current()
	if !ok {
		t.Fatal("Current() after Refresh should hold a snapshot")
	}
	if snap.CityName == nil || *snap.CityName != "London" {
		t.Errorf("CityName = %v, want London", snap.CityName)
	}
	if snap.Main == nil || *snap.Main.TempKelvin != 300 {
		t.Errorf("Main = %+v, want temp 300", snap.Main)
	}
}

func TestWeatherService_Refresh_ReplacesSnapshot(t *testing.T) {
	fetcher := &mockFetcher{results: []client.FetchResult{
		body(`{"name":"London","main":{"temp":280}}`),
		body(`{"name":"Paris"}`),
	}}
	svc := NewWeatherService(fetcher, testConfig(), nil)

	for i := 0; i < 2; i++ {
		if err := svc.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh() #%d error = %v", i+1, err)
		}
	}
	snap, _ := svc.Current()
	if *snap.CityName != "Paris" {
		t.Errorf("CityName = %q, want Paris", *snap.CityName)
	}
	if snap.Main != nil {
		t.Errorf("Main = %+v, want nil: the slot is replaced, not merged", snap.Main)
	}
}

func TestWeatherService_Refresh_TransportErrorKeepsSlot(t *testing.T) {
	transportErr := fmt.Errorf("%w: connection refused", client.ErrTransport)
	fetcher := &mockFetcher{results: []client.FetchResult{
		body(`{"name":"London"}`),
		{Err: transportErr},
	}}
	svc := NewWeatherService(fetcher, testConfig(), zap.NewNop())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	err := svc.Refresh(context.Background())
	if !errors.Is(err, client.ErrTransport) {
		t.Fatalf("Refresh() error = %v, want ErrTransport", err)
	}
	snap, ok := svc.Current()
	if !ok || *snap.CityName != "London" {
		t.Errorf("Current() = %+v, %v; want previous snapshot kept", snap, ok)
	}
}

func TestWeatherService_Refresh_DecodeErrorClearsSlot(t *testing.T) {
	fetcher := &mockFetcher{results: []client.FetchResult{
		body(`{"name":"London"}`),
		body(`not json`),
	}}
	svc := NewWeatherService(fetcher, testConfig(), zap.NewNop())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	err := svc.Refresh(context.Background())
	var decodeErr *client.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Refresh() error = %v, want *client.DecodeError", err)
	}
	if _, ok := svc.Current(); ok {
		t.Error("Current() should be empty after a failed decode")
	}
}

func TestWeatherService_Refresh_InvalidBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.WeatherAPIURL = "::not-a-url"
	fetcher := &mockFetcher{}
	svc := NewWeatherService(fetcher, cfg, zap.NewNop())

	err := svc.Refresh(context.Background())
	if !errors.Is(err, client.ErrInvalidBaseURL) {
		t.Fatalf("Refresh() error = %v, want ErrInvalidBaseURL", err)
	}
	if len(fetcher.urls) != 0 {
		t.Errorf("Fetch called %d times, want 0 when the URL cannot be built", len(fetcher.urls))
	}
}

func TestWeatherService_Refresh_NoResult(t *testing.T) {
	svc := NewWeatherService(&mockFetcher{noValue: true}, testConfig(), zap.NewNop())

	err := svc.Refresh(context.Background())
	if !errors.Is(err, errNoFetchResult) {
		t.Fatalf("Refresh() error = %v, want errNoFetchResult", err)
	}
}

func TestIntOrZero(t *testing.T) {
	v := 404
	if got := intOrZero(&v); got != 404 {
		t.Errorf("intOrZero(&404) = %d", got)
	}
	if got := intOrZero(nil); got != 0 {
		t.Errorf("intOrZero(nil) = %d, want 0", got)
	}
}
