package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/organized-life/backend/internal/application/adapter"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
	AllDevices   bool
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase revokes refresh tokens.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute invalidates the given refresh token, or every token of the user when AllDevices is set.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.AllDevices {
		claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
		if err != nil {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidToken,
				"invalid refresh token",
				domainerror.ErrInvalidToken,
			)
		}
		if err := uc.tokenService.InvalidateAllUserTokens(ctx, claims.UserID); err != nil {
			return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
		}
		return &LogoutUserOutput{Message: "Successfully logged out from all devices"}, nil
	}

	// The token may already be invalid; logging out is still a success.
	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.WarnContext(ctx, "failed to invalidate refresh token", "error", err)
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
