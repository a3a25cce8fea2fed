package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/organized-life/backend/internal/application/adapter"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput represents the output of token refresh.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenUseCase trades a live refresh token for a new pair. Each refresh
// token is single use.
type RefreshTokenUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute revokes the presented token and issues a pair for the account it
// names. The new access token carries the stored email, not the one in the old claims.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.redeem(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, rejectedRefresh("account no longer exists")
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}

	pair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token pair: %w", err)
	}

	return &RefreshTokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// redeem checks the token signature and revocation list, then revokes it.
func (uc *RefreshTokenUseCase) redeem(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, token)
	if err != nil {
		return nil, rejectedRefresh("invalid or expired refresh token")
	}

	live, err := uc.tokenService.IsRefreshTokenValid(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if !live {
		return nil, rejectedRefresh("refresh token has been revoked")
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return claims, nil
}

func rejectedRefresh(reason string) *domainerror.AuthError {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, reason, domainerror.ErrInvalidToken)
}
