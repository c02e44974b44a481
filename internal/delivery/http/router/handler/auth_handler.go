// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"farmweather/config"
	"farmweather/internal/delivery/http/middleware"
	"farmweather/internal/domain/entity"
	domainerrors "farmweather/internal/domain/errors"
	"farmweather/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the registration, login and profile pages.
type AuthHandler struct {
	auth       usecase.AuthUsecase
	cookieName string
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(auth usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

type registerForm struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerPage struct {
	Error    string
	Username string
	Email    string
}

type loginPage struct {
	Error               string
	Username            string
	RegistrationSuccess bool
}

type profilePage struct {
	Account *entity.Account
	Error   string
}

// RegisterForm renders the empty registration form.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", registerPage{})
}

// Register handles the registration form submission. On success the browser
// is redirected to the login page with a success banner; on failure the form
// is re-rendered with the error message.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", registerPage{
			Error: domainerrors.ErrValidationFailed.Message(),
		})
	}

	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", registerPage{
			Error:    registerValidationMessage(err),
			Username: form.Username,
			Email:    form.Email,
		})
	}

	_, err := h.auth.Register(c.Request().Context(), &usecase.RegisterInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return c.Render(appErr.HTTPCode(), "register.html", registerPage{
				Error:    appErr.Message(),
				Username: form.Username,
				Email:    form.Email,
			})
		}

		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/login?registrationSuccess=true")
}

// registerValidationMessage maps a validator error to the message shown next
// to the registration form.
func registerValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			if fieldErr.Tag() == "email" {
				return "Please enter a valid email address"
			}
		}
	}

	return domainerrors.ErrValidationFailed.Message()
}

// LoginForm renders the login form, with a success banner after registration.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPage{
		RegistrationSuccess: c.QueryParam("registrationSuccess") == "true",
	})
}

// Login handles the login form submission and issues the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", loginPage{
			Error: "Username and password are required",
		})
	}

	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", loginPage{
			Error:    "Username and password are required",
			Username: form.Username,
		})
	}

	output, err := h.auth.Login(c.Request().Context(), &usecase.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return c.Render(appErr.HTTPCode(), "login.html", loginPage{
				Error:    appErr.Message(),
				Username: form.Username,
			})
		}

		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    output.Token,
		Path:     "/",
		Expires:  output.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, "/profile")
}

// Logout ends the session and clears the cookie. Idempotent: logging out
// while anonymous just redirects home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return errors.WithStack(err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, "/")
}

// Profile renders the current account, or an unauthenticated message. The
// missing-session case is a rendered page, not a hard failure.
func (h *AuthHandler) Profile(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return c.Render(http.StatusUnauthorized, "profile.html", profilePage{
			Error: domainerrors.ErrUnauthenticated.Message(),
		})
	}

	return c.Render(http.StatusOK, "profile.html", profilePage{Account: account})
}
