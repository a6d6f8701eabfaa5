package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/FACorreiaa/go-budget-trip-planner/config"
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
)

var _ Client = (*ClientImpl)(nil)

// Unavailable is the summary shown when the weather lookup fails in any way.
const Unavailable = "Weather unavailable"

// Client fetches the current weather for a coordinate. Summary never fails:
// any upstream problem collapses to the Unavailable string.
type Client interface {
	Current(ctx context.Context, coord types.Coordinate) (types.WeatherReport, error)
	Summary(ctx context.Context, coord types.Coordinate) string
}

type ClientImpl struct {
	logger     *slog.Logger
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

func NewClientImpl(cfg *config.Config, logger *slog.Logger) *ClientImpl {
	timeout := cfg.Upstream.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClientImpl{
		logger:     logger,
		endpoint:   cfg.Upstream.OpenMeteoURL,
		userAgent:  cfg.Upstream.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type currentWeatherResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
}

func (c *ClientImpl) Current(ctx context.Context, coord types.Coordinate) (types.WeatherReport, error) {
	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current_weather=true",
		c.endpoint, coord.Latitude, coord.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.WeatherReport{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.WeatherReport{}, fmt.Errorf("request failed: %v: %w", err, types.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.WeatherReport{}, fmt.Errorf("unexpected status %d: %w", resp.StatusCode, types.ErrUpstreamUnavailable)
	}

	var parsed currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return types.WeatherReport{}, fmt.Errorf("malformed response: %v: %w", err, types.ErrUpstreamUnavailable)
	}

	return types.WeatherReport{
		TemperatureC: parsed.CurrentWeather.Temperature,
		WindspeedKmh: parsed.CurrentWeather.Windspeed,
	}, nil
}

// Summary renders the report as a one-line string for the plan response.
func (c *ClientImpl) Summary(ctx context.Context, coord types.Coordinate) string {
	report, err := c.Current(ctx, coord)
	if err != nil {
		c.logger.WarnContext(ctx, "Weather lookup failed", slog.Any("error", err))
		return Unavailable
	}
	return fmt.Sprintf("%.1f°C | wind %.1f km/h", report.TemperatureC, report.WindspeedKmh)
}
