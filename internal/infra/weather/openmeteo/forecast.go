package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"farmweather/config"
	"farmweather/internal/domain/service"
	"farmweather/internal/observability"

	"github.com/pkg/errors"
)

const dailyVariables = "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode"

// ForecastClient implements service.ForecastProvider using the Open-Meteo forecast API.
type ForecastClient struct {
	baseURL      string
	httpClient   *http.Client
	forecastDays int
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewForecastClient creates an Open-Meteo forecast client.
func NewForecastClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		baseURL: cfg.Weather.ForecastBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Weather.Timeout,
		},
		forecastDays: cfg.Weather.ForecastDays,
		metrics:      metrics,
		logger:       logger,
	}
}

// Snapshot fetches the instantaneous current reading together with the daily series.
func (c *ForecastClient) Snapshot(ctx context.Context, lat, lon float64) (*service.ForecastBundle, error) {
	resp, err := c.fetch(ctx, lat, lon, true)
	if err != nil {
		return nil, err
	}

	bundle := &service.ForecastBundle{
		Daily: resp.dailyObservations(),
	}
	if resp.CurrentWeather != nil {
		bundle.Current = &service.CurrentObservation{
			Temperature: resp.CurrentWeather.Temperature,
			Windspeed:   resp.CurrentWeather.Windspeed,
			WeatherCode: resp.CurrentWeather.WeatherCode,
		}
	}

	return bundle, nil
}

// Daily fetches only the multi-day daily series.
func (c *ForecastClient) Daily(ctx context.Context, lat, lon float64) ([]service.DailyObservation, error) {
	resp, err := c.fetch(ctx, lat, lon, false)
	if err != nil {
		return nil, err
	}

	return resp.dailyObservations(), nil
}

func (c *ForecastClient) fetch(ctx context.Context, lat, lon float64, includeCurrent bool) (*forecastResponse, error) {
	params := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', 4, 64)},
		"daily":         {dailyVariables},
		"forecast_days": {strconv.Itoa(c.forecastDays)},
		"timezone":      {"auto"},
	}
	if includeCurrent {
		params.Set("current_weather", "true")
	}
	fullURL := fmt.Sprintf("%s/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create forecast request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("forecast", "error").Inc()

		return nil, errors.Wrap(err, "forecast request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Forecast API returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)

		return nil, errors.Errorf("forecast API error: status %d", resp.StatusCode)
	}

	var forecastResp forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecastResp); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("forecast", "error").Inc()

		return nil, errors.Wrap(err, "decode forecast response")
	}

	c.metrics.UpstreamRequests.WithLabelValues("forecast", "success").Inc()

	return &forecastResp, nil
}

// Open-Meteo forecast API response types. The daily block is column-oriented:
// parallel arrays indexed by day.

type forecastResponse struct {
	CurrentWeather *currentWeather `json:"current_weather"`
	Daily          *dailyBlock     `json:"daily"`
}

type currentWeather struct {
	Temperature float64 `json:"temperature"`
	Windspeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

type dailyBlock struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WeatherCode      []int     `json:"weathercode"`
}

// dailyObservations flattens the column-oriented daily block into one
// observation per day. Days with missing columns are dropped rather than
// filled with zero values.
func (r *forecastResponse) dailyObservations() []service.DailyObservation {
	if r.Daily == nil {
		return nil
	}

	days := make([]service.DailyObservation, 0, len(r.Daily.Time))
	for i, date := range r.Daily.Time {
		if i >= len(r.Daily.TemperatureMax) ||
			i >= len(r.Daily.TemperatureMin) ||
			i >= len(r.Daily.PrecipitationSum) ||
			i >= len(r.Daily.WeatherCode) {
			break
		}

		days = append(days, service.DailyObservation{
			Date:          date,
			TempMax:       r.Daily.TemperatureMax[i],
			TempMin:       r.Daily.TemperatureMin[i],
			Precipitation: r.Daily.PrecipitationSum[i],
			WeatherCode:   r.Daily.WeatherCode[i],
		})
	}

	return days
}
