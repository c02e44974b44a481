// Package openmeteo implements the outbound geocoding and forecast clients
// against the Open-Meteo public APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"farmweather/config"
	"farmweather/internal/domain/entity"
	"farmweather/internal/observability"

	"github.com/pkg/errors"
)

// Geocoder implements service.Geocoder using the Open-Meteo geocoding API.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewGeocoder creates an Open-Meteo geocoding client.
func NewGeocoder(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Geocoder {
	return &Geocoder{
		baseURL: cfg.Weather.GeocodeBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Weather.Timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// LookupPincode resolves a postal code to coordinates and a display name.
// Returns (nil, nil) when the provider has no match for the pincode. When the
// provider returns several matches the first one wins.
func (c *Geocoder) LookupPincode(ctx context.Context, pincode string) (*entity.Location, error) {
	params := url.Values{
		"name":  {pincode},
		"count": {"1"},
	}
	fullURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create geocode request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()

		return nil, errors.Wrap(err, "geocode request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Geocoding API returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)

		return nil, errors.Errorf("geocoding API error: status %d", resp.StatusCode)
	}

	var geocodeResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocodeResp); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()

		return nil, errors.Wrap(err, "decode geocode response")
	}

	if len(geocodeResp.Results) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "empty").Inc()

		return nil, nil
	}

	c.metrics.UpstreamRequests.WithLabelValues("geocode", "success").Inc()

	first := geocodeResp.Results[0]

	return &entity.Location{
		Name:      first.DisplayName(),
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
	}, nil
}

// Open-Meteo geocoding API response types.

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
}

// DisplayName builds a human-readable place name from the available parts.
func (r geocodeResult) DisplayName() string {
	name := r.Name
	if r.Admin1 != "" && r.Admin1 != r.Name {
		name += ", " + r.Admin1
	}
	if r.Country != "" {
		name += ", " + r.Country
	}

	return name
}
