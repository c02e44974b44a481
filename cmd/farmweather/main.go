package main

import (
	"context"
	"log/slog"
	"os"

	"farmweather/config"
	"farmweather/internal/delivery"
	"farmweather/internal/delivery/http"
	"farmweather/internal/delivery/http/middleware"
	"farmweather/internal/delivery/http/router/handler"
	"farmweather/internal/delivery/worker"
	"farmweather/internal/domain/service"
	"farmweather/internal/infra/auth"
	logs "farmweather/internal/infra/log"
	"farmweather/internal/infra/persistence/postgres"
	"farmweather/internal/infra/weather/openmeteo"
	"farmweather/internal/observability"
	"farmweather/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		observability.NewMetrics,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewSessionRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewSessionTokenService,
			newGeocoder,
			newForecastProvider,
		),
	)
}

// newGeocoder builds the pincode geocoder with an in-memory lookup cache in
// front of the Open-Meteo client.
func newGeocoder(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) service.Geocoder {
	client := openmeteo.NewGeocoder(cfg, metrics, logger)

	return openmeteo.NewCachedGeocoder(client, cfg.Weather.GeocodeCacheSize, metrics)
}

func newForecastProvider(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) service.ForecastProvider {
	return openmeteo.NewForecastClient(cfg, metrics, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewWeatherService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewWeatherHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewSessionCleanup,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
