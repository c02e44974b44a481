package usecase

import (
	"context"

	"farmweather/internal/domain/entity"
)

// WeatherUsecase is the single weather lookup pipeline. Both modes share
// pincode validation, geocoding and the weather-code mapping; they differ only
// in what they fetch from the forecast provider.
type WeatherUsecase interface {
	// Snapshot returns the current reading plus today's aggregates for a pincode.
	Snapshot(ctx context.Context, pincode string) (*entity.WeatherSnapshot, error)

	// FullForecast returns the multi-day daily series for a pincode. No
	// current-weather fetch is performed.
	FullForecast(ctx context.Context, pincode string) (*entity.WeatherForecast, error)
}
