// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"farmweather/config"
	"farmweather/internal/domain/entity"
	domainerrors "farmweather/internal/domain/errors"
	"farmweather/internal/domain/repository"
	"farmweather/internal/domain/service"
	"farmweather/internal/observability"
	"farmweather/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	accountRepo       repository.AccountRepository
	sessionRepo       repository.SessionRepository
	hasher            service.PasswordHasher
	tokens            service.SessionTokenService
	minPasswordLength int
	metrics           *observability.Metrics
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	SessionRepo repository.SessionRepository
	Hasher      service.PasswordHasher
	Tokens      service.SessionTokenService
	Config      *config.Config
	Metrics     *observability.Metrics
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	minPasswordLength := 6
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	return &authService{
		txManager:         params.TxManager,
		accountRepo:       params.AccountRepo,
		sessionRepo:       params.SessionRepo,
		hasher:            params.Hasher,
		tokens:            params.Tokens,
		minPasswordLength: minPasswordLength,
		metrics:           params.Metrics,
		logger:            params.Logger,
	}
}

// Register orchestrates the complete account registration process.
// Registration never logs the account in; the caller stays in whatever
// session state it already had. Password material is never logged.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		srv.metrics.Registrations.WithLabelValues("validation").Inc()

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "registration rejected")
	}

	if input.Password != input.ConfirmPassword {
		srv.metrics.Registrations.WithLabelValues("validation").Inc()

		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithMessage("Passwords do not match"),
			"registration rejected",
		)
	}

	if len(input.Password) < srv.minPasswordLength {
		srv.metrics.Registrations.WithLabelValues("validation").Inc()

		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithMessage(
				fmt.Sprintf("Password must be at least %d characters long", srv.minPasswordLength)),
			"registration rejected",
		)
	}

	srv.logger.Info("Starting registration", slog.String("username", username))

	// Hash outside the transaction (bcrypt is CPU-bound).
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.metrics.Registrations.WithLabelValues("error").Inc()
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CropHistory:  []entity.CropRecord{},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		existing, err := accountRepo.FindByUsernameOrEmail(ctx, username, email)
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check for existing account")
		}
		if existing != nil {
			return errors.Wrap(domainerrors.ErrAccountExists, "duplicate registration")
		}

		if err := accountRepo.Create(ctx, newAccount); err != nil {
			// The unique index is authoritative; a concurrent insert can
			// still slip past the lookup above.
			if errors.Is(err, repository.ErrAccountExists) {
				return errors.Wrap(domainerrors.ErrAccountExists, "duplicate registration")
			}

			return errors.Wrap(err, "failed to create account during registration")
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountExists) {
			srv.metrics.Registrations.WithLabelValues("conflict").Inc()
			srv.logger.Warn("Registration conflict", slog.String("username", username))
		} else {
			srv.metrics.Registrations.WithLabelValues("error").Inc()
			srv.logger.Error("Failed to execute registration transaction",
				slog.String("username", username), slog.Any("error", err))
		}

		return nil, err
	}

	srv.metrics.Registrations.WithLabelValues("success").Inc()
	srv.logger.Info("Registration completed",
		slog.String("username", username), slog.Any("accountID", newAccount.ID))

	return newAccount, nil
}

// Login verifies credentials and issues a new session. An unknown username
// and a wrong password produce the identical error so a caller cannot tell
// which field was wrong.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		srv.metrics.Logins.WithLabelValues("invalid").Inc()

		return nil, errors.Wrap(
			domainerrors.ErrValidationFailed.WithMessage("Username and password are required"),
			"login rejected",
		)
	}

	srv.logger.Debug("Starting login", slog.String("username", username))

	account, err := srv.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.metrics.Logins.WithLabelValues("invalid").Inc()
			srv.logger.Warn("Login failed", slog.String("username", username))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}
		srv.metrics.Logins.WithLabelValues("error").Inc()

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.metrics.Logins.WithLabelValues("invalid").Inc()
		srv.logger.Warn("Login failed", slog.String("username", username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokens.Generate()
	if err != nil {
		srv.metrics.Logins.WithLabelValues("error").Inc()

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	session := &entity.Session{
		AccountID: account.ID,
		TokenHash: srv.tokens.HashToken(token),
		ExpiresAt: time.Now().Add(srv.tokens.TTL()),
	}

	// Single insert, no transaction needed.
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		srv.metrics.Logins.WithLabelValues("error").Inc()

		return nil, errors.Wrap(err, "failed to create session during login")
	}

	srv.metrics.Logins.WithLabelValues("success").Inc()
	srv.logger.Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Account:   account,
	}, nil
}

// Logout ends the session for the given token. It is idempotent: an unknown
// or already-ended session is treated as success.
func (srv *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := srv.sessionRepo.DeleteByTokenHash(ctx, srv.tokens.HashToken(token)); err != nil {
		srv.logger.Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// CurrentAccount resolves a session token to its account. Missing, unknown
// and expired tokens all resolve to ErrUnauthenticated.
func (srv *authService) CurrentAccount(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no session token")
	}

	session, err := srv.sessionRepo.FindByTokenHash(ctx, srv.tokens.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "unknown or expired session")
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	account, err := srv.accountRepo.FindByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Dangling session; accounts are never deleted, so this would
			// point at a corrupted store rather than a normal flow.
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "session references missing account")
		}

		return nil, errors.Wrap(err, "failed to load account for session")
	}

	return account, nil
}

// CleanupExpiredSessions removes expired sessions and returns how many were deleted.
func (srv *authService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := srv.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired sessions")
	}

	if deleted > 0 {
		srv.logger.Debug("Cleaned up expired sessions", slog.Int64("deleted", deleted))
	}

	return deleted, nil
}
