package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "farmweather/internal/domain/errors"
	"farmweather/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:        "ramesh",
		Email:           "ramesh@example.com",
		Password:        "growmore",
		ConfirmPassword: "growmore",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	account, err := fixtures.service.Register(ctx, registerInput())

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "ramesh", account.Username)
	assert.Equal(t, "ramesh@example.com", account.Email)
	assert.Equal(t, "hashed:growmore", account.PasswordHash)
	assert.NotEmpty(t, account.ID)
	assert.Empty(t, account.CropHistory)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	input := registerInput()
	input.Email = "   "

	account, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "All fields are required", appErr.Message())
	assert.Zero(t, fixtures.accounts.creates)
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	input := registerInput()
	input.ConfirmPassword = "growless"

	_, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Passwords do not match", appErr.Message())
}

func TestAuthService_Register_PasswordTooShort(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	input := registerInput()
	input.Password = "five5"
	input.ConfirmPassword = "five5"

	_, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Password must be at least 6 characters long", appErr.Message())
	assert.Zero(t, fixtures.accounts.creates)
}

func TestAuthService_Register_PasswordTooShortConfiguredMinimum(t *testing.T) {
	fixtures := createTestAuthServiceWithMinPassword(10)
	ctx := context.Background()

	input := registerInput()
	input.Password = "ninechars"
	input.ConfirmPassword = "ninechars"

	_, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	// The message reflects the configured bound, not a hardcoded one.
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Password must be at least 10 characters long", appErr.Message())
	assert.Zero(t, fixtures.accounts.creates)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.Email = "other@example.com"

	account, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountExists))
	// The losing attempt must not add a second row.
	assert.Len(t, fixtures.accounts.accounts, 1)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.Username = "suresh"

	_, err = fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountExists))
}

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "ramesh",
		Password: "growmore",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.NotEmpty(t, output.Token)
	assert.True(t, output.ExpiresAt.After(time.Now()))
	assert.Equal(t, "ramesh", output.Account.Username)

	// The session store holds the hash, never the plaintext token.
	_, ok := fixtures.sessions.sessions[output.Token]
	assert.False(t, ok)
	_, ok = fixtures.sessions.sessions["h:"+output.Token]
	assert.True(t, ok)
}

func TestAuthService_Login_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	_, wrongPassErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "ramesh",
		Password: "wrong-password",
	})
	_, unknownUserErr := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "nobody",
		Password: "growmore",
	})

	require.Error(t, wrongPassErr)
	require.Error(t, unknownUserErr)
	assert.True(t, errors.Is(wrongPassErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownUserErr, domainerrors.ErrInvalidCredentials))

	var wrongPassApp, unknownUserApp domainerrors.AppError
	require.True(t, errors.As(wrongPassErr, &wrongPassApp))
	require.True(t, errors.As(unknownUserErr, &unknownUserApp))
	assert.Equal(t, wrongPassApp.Message(), unknownUserApp.Message())
	assert.Equal(t, wrongPassApp.HTTPCode(), unknownUserApp.HTTPCode())
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "ramesh"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Username and password are required", appErr.Message())
}

func TestAuthService_CurrentAccount_Lifecycle(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "ramesh",
		Password: "growmore",
	})
	require.NoError(t, err)

	account, err := fixtures.service.CurrentAccount(ctx, output.Token)
	require.NoError(t, err)
	assert.Equal(t, "ramesh", account.Username)
	assert.Empty(t, account.CropHistory)

	require.NoError(t, fixtures.service.Logout(ctx, output.Token))

	_, err = fixtures.service.CurrentAccount(ctx, output.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))

	// Logging out again is still fine.
	require.NoError(t, fixtures.service.Logout(ctx, output.Token))
}

func TestAuthService_CurrentAccount_ExpiredSession(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{
		Username: "ramesh",
		Password: "growmore",
	})
	require.NoError(t, err)

	// Move the store's clock past the session expiry.
	fixtures.sessions.now = func() time.Time {
		return time.Now().Add(2 * time.Hour)
	}

	_, err = fixtures.service.CurrentAccount(ctx, output.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestAuthService_CurrentAccount_EmptyToken(t *testing.T) {
	fixtures := createTestAuthService()

	_, err := fixtures.service.CurrentAccount(context.Background(), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestAuthService_CleanupExpiredSessions(t *testing.T) {
	fixtures := createTestAuthService()
	ctx := context.Background()

	_, err := fixtures.service.Register(ctx, registerInput())
	require.NoError(t, err)

	first, err := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "ramesh", Password: "growmore"})
	require.NoError(t, err)
	second, err := fixtures.service.Login(ctx, &usecase.LoginInput{Username: "ramesh", Password: "growmore"})
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	fixtures.sessions.now = func() time.Time {
		return time.Now().Add(2 * time.Hour)
	}

	deleted, err := fixtures.service.CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
