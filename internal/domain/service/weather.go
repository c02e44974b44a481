package service

import (
	"context"

	"farmweather/internal/domain/entity"
)

// Geocoder resolves a postal code to coordinates and a display name.
type Geocoder interface {
	// LookupPincode returns the best match for a pincode, or (nil, nil)
	// when the provider has no match. The first result returned by the
	// provider always wins; no ranking is applied.
	LookupPincode(ctx context.Context, pincode string) (*entity.Location, error)
}

// ForecastProvider fetches weather data for resolved coordinates. Both calls
// map onto a single provider request each.
type ForecastProvider interface {
	// Snapshot fetches the instantaneous current reading together with the
	// daily series. Current is nil when the provider omits it.
	Snapshot(ctx context.Context, lat, lon float64) (*ForecastBundle, error)

	// Daily fetches only the multi-day daily series.
	Daily(ctx context.Context, lat, lon float64) ([]DailyObservation, error)
}

// ForecastBundle is the provider-shaped snapshot response.
type ForecastBundle struct {
	Current *CurrentObservation
	Daily   []DailyObservation
}

// CurrentObservation is the provider-shaped instantaneous reading.
type CurrentObservation struct {
	Temperature float64
	Windspeed   float64
	WeatherCode int
}

// DailyObservation is one provider-shaped day of aggregates.
type DailyObservation struct {
	Date          string // ISO 8601 date (2006-01-02)
	TempMax       float64
	TempMin       float64
	Precipitation float64
	WeatherCode   int
}
