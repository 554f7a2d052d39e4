package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePassword replaces the stored hash for the user matching both
	// email and role. Returns domain.ErrUserNotFound when no record matches.
	UpdatePassword(ctx context.Context, email, role, passwordHash string) error
}
