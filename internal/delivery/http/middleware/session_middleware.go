// Package middleware contains the echo middleware for the HTTP delivery.
package middleware

import (
	"log/slog"

	"farmweather/config"
	"farmweather/internal/domain/entity"
	domainerrors "farmweather/internal/domain/errors"
	"farmweather/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	accountContextKey = "currentAccount"
	tokenContextKey   = "sessionToken"
)

// SessionMiddleware resolves the session cookie into the acting account.
type SessionMiddleware struct {
	auth       usecase.AuthUsecase
	cookieName string
	logger     *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(auth usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		auth:       auth,
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

// LoadAccount reads the session cookie and, when it resolves to a live
// session, stores the account on the echo context. Authentication is
// optional here: anonymous requests pass through untouched, and handlers
// decide whether a page requires a login.
func (m *SessionMiddleware) LoadAccount(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		account, err := m.auth.CurrentAccount(c.Request().Context(), cookie.Value)
		if err != nil {
			// Expired or unknown tokens are normal; anything else is worth a log line.
			if !errors.Is(err, domainerrors.ErrUnauthenticated) {
				m.logger.Error("Failed to resolve session", slog.Any("error", err))
			}

			return next(c)
		}

		c.Set(accountContextKey, account)
		c.Set(tokenContextKey, cookie.Value)

		return next(c)
	}
}

// CurrentAccount returns the account resolved by LoadAccount, or nil for
// anonymous requests.
func CurrentAccount(c echo.Context) *entity.Account {
	account, _ := c.Get(accountContextKey).(*entity.Account)

	return account
}

// SessionToken returns the raw session token for the request, or "".
func SessionToken(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)

	return token
}
