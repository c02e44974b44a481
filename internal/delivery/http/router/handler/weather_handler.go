package handler

import (
	"log/slog"
	"net/http"

	"farmweather/internal/delivery/http/middleware"
	"farmweather/internal/domain/entity"
	domainerrors "farmweather/internal/domain/errors"
	"farmweather/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WeatherHandler serves the home page, the forecast pages and the static
// crop recommender page.
type WeatherHandler struct {
	weather usecase.WeatherUsecase
	logger  *slog.Logger
}

// NewWeatherHandler is the constructor for WeatherHandler, injected by Fx.
func NewWeatherHandler(weather usecase.WeatherUsecase, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{
		weather: weather,
		logger:  logger,
	}
}

type homePage struct {
	Account *entity.Account
	Pincode string
	Weather *entity.WeatherSnapshot
	Error   string
}

type forecastPage struct {
	Account  *entity.Account
	Pincode  string
	Forecast *entity.WeatherForecast
	Error    string
}

type cropPage struct {
	Account *entity.Account
}

// Home renders the landing page with the pincode lookup form.
func (h *WeatherHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", homePage{
		Account: middleware.CurrentAccount(c),
	})
}

// SubmitPincodeHome resolves the submitted pincode to a current weather
// snapshot and re-renders the home page with the result.
func (h *WeatherHandler) SubmitPincodeHome(c echo.Context) error {
	pincode := c.FormValue("pincode")

	snapshot, err := h.weather.Snapshot(c.Request().Context(), pincode)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return c.Render(appErr.HTTPCode(), "home.html", homePage{
				Account: middleware.CurrentAccount(c),
				Pincode: pincode,
				Error:   appErr.Message(),
			})
		}

		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "home.html", homePage{
		Account: middleware.CurrentAccount(c),
		Pincode: pincode,
		Weather: snapshot,
	})
}

// ForecastForm renders the multi-day forecast lookup form.
func (h *WeatherHandler) ForecastForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forecast.html", forecastPage{
		Account: middleware.CurrentAccount(c),
	})
}

// GetCoordinates resolves the submitted pincode to a multi-day forecast and
// renders the forecast table.
func (h *WeatherHandler) GetCoordinates(c echo.Context) error {
	pincode := c.FormValue("pincode")

	forecast, err := h.weather.FullForecast(c.Request().Context(), pincode)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return c.Render(appErr.HTTPCode(), "forecast.html", forecastPage{
				Account: middleware.CurrentAccount(c),
				Pincode: pincode,
				Error:   appErr.Message(),
			})
		}

		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "forecast.html", forecastPage{
		Account:  middleware.CurrentAccount(c),
		Pincode:  pincode,
		Forecast: forecast,
	})
}

// CropRecommender renders the static crop guidance page.
func (h *WeatherHandler) CropRecommender(c echo.Context) error {
	return c.Render(http.StatusOK, "crop_recommender.html", cropPage{
		Account: middleware.CurrentAccount(c),
	})
}

// HealthCheck reports process liveness.
func (h *WeatherHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
