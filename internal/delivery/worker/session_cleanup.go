// Package worker contains the background deliveries of the application.
package worker

import (
	"context"
	"log/slog"
	"time"

	"farmweather/config"
	"farmweather/internal/delivery"
	"farmweather/internal/usecase"

	"go.uber.org/fx"
)

type CleanupParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	Auth   usecase.AuthUsecase
}

// sessionCleanup periodically removes expired sessions so the sessions table
// does not grow without bound.
type sessionCleanup struct {
	interval time.Duration
	logger   *slog.Logger
	auth     usecase.AuthUsecase
	stop     chan struct{}
}

// NewSessionCleanup builds the expired-session sweeper as a delivery.
func NewSessionCleanup(params CleanupParams) delivery.Delivery {
	cleanup := &sessionCleanup{
		interval: params.Config.Session.CleanupInterval,
		logger:   params.Logger,
		auth:     params.Auth,
		stop:     make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			close(cleanup.stop)

			return nil
		},
	})

	return cleanup
}

// Serve sweeps on a ticker until the application stops.
func (w *sessionCleanup) Serve(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting session cleanup worker", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ticker.C:
			removed, err := w.auth.CleanupExpiredSessions(ctx)
			if err != nil {
				w.logger.Error("Failed to clean up expired sessions", slog.Any("error", err))

				continue
			}
			if removed > 0 {
				w.logger.Info("Removed expired sessions", slog.Int64("count", removed))
			}
		case <-w.stop:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
