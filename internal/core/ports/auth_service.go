package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// TokenPair is returned on successful login. The two tokens are signed with
// independent secrets and expiries.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	ChangePassword(ctx context.Context, email, role, oldPassword, newPassword string) error
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
