// Package router contains routing setup for the HTTP delivery.
package router

import (
	"farmweather/internal/delivery/http/middleware"
	"farmweather/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	WeatherHandler    *handler.WeatherHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	weatherHandler    *handler.WeatherHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		weatherHandler:    params.WeatherHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application. Every page goes
// through the session middleware so templates can show the signed-in state;
// none of them require a login to load.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", r.weatherHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Use(r.sessionMiddleware.LoadAccount)

	// Weather pages
	e.GET("/", r.weatherHandler.Home)
	e.POST("/submit-pincode-home", r.weatherHandler.SubmitPincodeHome)
	e.GET("/weather-forecast", r.weatherHandler.ForecastForm)
	e.POST("/get-coordinates", r.weatherHandler.GetCoordinates)
	e.GET("/crop-recommender", r.weatherHandler.CropRecommender)

	// Account pages
	e.GET("/register", r.authHandler.RegisterForm)
	e.POST("/register", r.authHandler.Register)
	e.GET("/login", r.authHandler.LoginForm)
	e.POST("/login", r.authHandler.Login)
	e.POST("/logout", r.authHandler.Logout)
	e.GET("/profile", r.authHandler.Profile)
}
