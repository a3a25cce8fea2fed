package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/testutil"
)

// plainPasswords stores passwords with a fixed prefix instead of hashing them.
type plainPasswords struct{}

func (plainPasswords) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainPasswords) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	return authErr.Code
}

func TestRegisterUser(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	users := testutil.NewUserRepository()
	tokens := testutil.NewTokenService()
	uc := NewRegisterUserUseCase(users, plainPasswords{}, tokens, testutil.NewClock(now))

	out, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:         "  Ana@Example.COM ",
		Name:          " Ana ",
		Password:      "correct-horse",
		TermsAccepted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, "Ana", out.User.Name)
	assert.Equal(t, now, out.User.TermsAcceptedAt)
	assert.Equal(t, entity.DefaultCurrency, out.User.Currency)
	assert.NotEmpty(t, out.AccessToken)

	valid, err := tokens.IsRefreshTokenValid(context.Background(), out.RefreshToken)
	require.NoError(t, err)
	assert.True(t, valid)

	stored, err := users.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:correct-horse", stored.PasswordHash)
}

func TestRegisterUser_Rejections(t *testing.T) {
	existing := entity.NewUser("taken@example.com", "Taken", "hashed:whatever1", time.Now())
	uc := NewRegisterUserUseCase(
		testutil.NewUserRepository(existing),
		plainPasswords{},
		testutil.NewTokenService(),
		testutil.NewClock(time.Now()),
	)

	tests := []struct {
		name  string
		input RegisterUserInput
		code  domainerror.AuthErrorCode
	}{
		{"missing name", RegisterUserInput{Email: "a@b.co", Password: "longenough", TermsAccepted: true}, domainerror.ErrCodeMissingFields},
		{"terms not accepted", RegisterUserInput{Email: "a@b.co", Name: "A", Password: "longenough"}, domainerror.ErrCodeTermsNotAccepted},
		{"bad email", RegisterUserInput{Email: "not-an-email", Name: "A", Password: "longenough", TermsAccepted: true}, domainerror.ErrCodeInvalidEmail},
		{"weak password", RegisterUserInput{Email: "a@b.co", Name: "A", Password: "short", TermsAccepted: true}, domainerror.ErrCodeWeakPassword},
		{"duplicate email", RegisterUserInput{Email: "TAKEN@example.com", Name: "A", Password: "longenough", TermsAccepted: true}, domainerror.ErrCodeEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, authCode(t, err))
		})
	}
}

func TestLoginUser(t *testing.T) {
	user := entity.NewUser("ana@example.com", "Ana", "hashed:correct-horse", time.Now())
	uc := NewLoginUserUseCase(testutil.NewUserRepository(user), plainPasswords{}, testutil.NewTokenService())

	out, err := uc.Execute(context.Background(), LoginUserInput{Email: "ANA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.NotEmpty(t, out.RefreshToken)

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), LoginUserInput{Email: "ana@example.com", Password: "wrong-horse"})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), LoginUserInput{Email: "nobody@example.com", Password: "correct-horse"})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
		assert.ErrorIs(t, err, domainerror.ErrInvalidCredentials)
	})
}

// staleEmailCheck answers the existence check from before a concurrent signup landed.
type staleEmailCheck struct {
	*testutil.UserRepository
}

func (staleEmailCheck) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func TestRegisterUser_ConcurrentSignupIsConflict(t *testing.T) {
	users := testutil.NewUserRepository(entity.NewUser("ana@example.com", "Ana", "hashed:whatever1", time.Now()))
	uc := NewRegisterUserUseCase(staleEmailCheck{users}, plainPasswords{}, testutil.NewTokenService(), testutil.NewClock(time.Now()))

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:         "Ana@Example.com",
		Name:          "Other Ana",
		Password:      "longenough",
		TermsAccepted: true,
	})
	assert.Equal(t, domainerror.ErrCodeEmailExists, authCode(t, err))
	assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)

	stored, err := users.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	ctx := context.Background()
	tokens := testutil.NewTokenService()
	user := entity.NewUser("ana@example.com", "Ana", "x", time.Now())
	pair, err := tokens.GenerateTokenPair(ctx, user.ID, user.Email, false)
	require.NoError(t, err)

	uc := NewRefreshTokenUseCase(testutil.NewUserRepository(user), tokens)
	out, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, out.RefreshToken)

	claims, err := tokens.ValidateAccessToken(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = uc.Execute(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err), "a rotated token cannot be reused")

	_, err = uc.Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))
}

func TestRefreshToken_UsesStoredAccount(t *testing.T) {
	ctx := context.Background()
	tokens := testutil.NewTokenService()
	user := entity.NewUser("ana@example.com", "Ana", "x", time.Now())
	uc := NewRefreshTokenUseCase(testutil.NewUserRepository(user), tokens)

	pair, err := tokens.GenerateTokenPair(ctx, user.ID, "old-address@example.com", false)
	require.NoError(t, err)
	out, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	claims, err := tokens.ValidateAccessToken(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	orphan, err := tokens.GenerateTokenPair(ctx, entity.NewUser("gone@example.com", "Gone", "x", time.Now()).ID, "gone@example.com", false)
	require.NoError(t, err)
	_, err = uc.Execute(ctx, RefreshTokenInput{RefreshToken: orphan.RefreshToken})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	live, err := tokens.IsRefreshTokenValid(ctx, orphan.RefreshToken)
	require.NoError(t, err)
	assert.False(t, live, "the orphaned token is still revoked")
}

func TestLogoutUser(t *testing.T) {
	ctx := context.Background()
	tokens := testutil.NewTokenService()
	user := entity.NewUser("ana@example.com", "Ana", "x", time.Now())
	laptop, err := tokens.GenerateTokenPair(ctx, user.ID, user.Email, false)
	require.NoError(t, err)
	phone, err := tokens.GenerateTokenPair(ctx, user.ID, user.Email, false)
	require.NoError(t, err)

	uc := NewLogoutUserUseCase(tokens)

	_, err = uc.Execute(ctx, LogoutUserInput{RefreshToken: laptop.RefreshToken})
	require.NoError(t, err)
	valid, _ := tokens.IsRefreshTokenValid(ctx, laptop.RefreshToken)
	assert.False(t, valid)
	valid, _ = tokens.IsRefreshTokenValid(ctx, phone.RefreshToken)
	assert.True(t, valid)

	out, err := uc.Execute(ctx, LogoutUserInput{RefreshToken: phone.RefreshToken, AllDevices: true})
	require.NoError(t, err)
	assert.Contains(t, out.Message, "all devices")
	valid, _ = tokens.IsRefreshTokenValid(ctx, phone.RefreshToken)
	assert.False(t, valid)

	_, err = uc.Execute(ctx, LogoutUserInput{RefreshToken: "unknown", AllDevices: true})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

	_, err = uc.Execute(ctx, LogoutUserInput{RefreshToken: "unknown"})
	assert.NoError(t, err)
}
