package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"farmweather/internal/domain/entity"
	domainerrors "farmweather/internal/domain/errors"
	"farmweather/internal/domain/service"
	"farmweather/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const dateLayout = "2006-01-02"

// weatherService implements the WeatherUsecase interface. Both lookup modes
// share the same validation and geocoding steps; the forecast fetch strictly
// follows a successful geocode.
type weatherService struct {
	geocoder service.Geocoder
	forecast service.ForecastProvider
	logger   *slog.Logger
}

// WeatherServiceParams holds dependencies for weatherService, injected by Fx.
type WeatherServiceParams struct {
	fx.In

	Geocoder service.Geocoder
	Forecast service.ForecastProvider
	Logger   *slog.Logger
}

// NewWeatherService is the constructor for weatherService.
func NewWeatherService(params WeatherServiceParams) usecase.WeatherUsecase {
	return &weatherService{
		geocoder: params.Geocoder,
		forecast: params.Forecast,
		logger:   params.Logger,
	}
}

// Snapshot returns the current reading plus today's aggregates for a pincode.
func (srv *weatherService) Snapshot(ctx context.Context, pincode string) (*entity.WeatherSnapshot, error) {
	location, err := srv.resolvePincode(ctx, pincode)
	if err != nil {
		return nil, err
	}

	bundle, err := srv.forecast.Snapshot(ctx, location.Latitude, location.Longitude)
	if err != nil {
		srv.logger.Warn("Forecast fetch failed",
			slog.String("location", location.Name), slog.Any("error", err))

		// Transport details stay in the logs; the user sees a generic message.
		return nil, errors.Wrap(domainerrors.ErrWeatherUnavailable, "forecast fetch failed")
	}

	if bundle.Current == nil || len(bundle.Daily) == 0 {
		return nil, errors.Wrap(domainerrors.ErrWeatherIncomplete, "missing current reading or daily series")
	}

	today := bundle.Daily[0]

	return &entity.WeatherSnapshot{
		LocationName:       location.Name,
		Temperature:        bundle.Current.Temperature,
		Windspeed:          bundle.Current.Windspeed,
		Condition:          entity.ConditionFromCode(bundle.Current.WeatherCode),
		TempMaxToday:       today.TempMax,
		TempMinToday:       today.TempMin,
		PrecipitationToday: today.Precipitation,
		Humidity:           entity.HumidityUnavailable,
	}, nil
}

// FullForecast returns the multi-day daily series for a pincode. The
// instantaneous current reading is not fetched in this mode.
func (srv *weatherService) FullForecast(ctx context.Context, pincode string) (*entity.WeatherForecast, error) {
	location, err := srv.resolvePincode(ctx, pincode)
	if err != nil {
		return nil, err
	}

	daily, err := srv.forecast.Daily(ctx, location.Latitude, location.Longitude)
	if err != nil {
		srv.logger.Warn("Forecast fetch failed",
			slog.String("location", location.Name), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrWeatherUnavailable, "forecast fetch failed")
	}

	if len(daily) == 0 {
		return nil, errors.Wrap(domainerrors.ErrWeatherIncomplete, "empty daily series")
	}

	days := make([]entity.DailyForecast, 0, len(daily))
	for _, obs := range daily {
		date, parseErr := time.Parse(dateLayout, obs.Date)
		if parseErr != nil {
			srv.logger.Warn("Skipping forecast day with malformed date",
				slog.String("date", obs.Date))

			continue
		}

		days = append(days, entity.DailyForecast{
			Date:          date,
			TempMax:       obs.TempMax,
			TempMin:       obs.TempMin,
			Precipitation: obs.Precipitation,
			WeatherCode:   obs.WeatherCode,
			Condition:     entity.ConditionFromCode(obs.WeatherCode),
		})
	}

	if len(days) == 0 {
		return nil, errors.Wrap(domainerrors.ErrWeatherIncomplete, "no usable forecast days")
	}

	return &entity.WeatherForecast{
		LocationName: location.Name,
		Days:         days,
	}, nil
}

// resolvePincode validates the pincode and geocodes it. A forecast fetch only
// ever happens after this succeeds.
func (srv *weatherService) resolvePincode(ctx context.Context, pincode string) (*entity.Location, error) {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return nil, errors.Wrap(domainerrors.ErrPincodeRequired, "blank pincode")
	}

	location, err := srv.geocoder.LookupPincode(ctx, pincode)
	if err != nil {
		srv.logger.Warn("Geocoding failed", slog.String("pincode", pincode), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrWeatherUnavailable, "geocode failed")
	}

	if location == nil {
		return nil, errors.Wrap(domainerrors.ErrPincodeNotFound, "no geocoding match")
	}

	return location, nil
}
