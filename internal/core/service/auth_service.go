package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// RevocationChecker abstracts the password-change stamp store (Redis).
// Refresh tokens issued before the latest stamp are rejected.
type RevocationChecker interface {
	StampPasswordChange(ctx context.Context, email string, at time.Time) error
	ChangedSince(ctx context.Context, email string, issuedAt time.Time) (bool, error)
}

// AuthService implements registration, login, password change, and
// refresh-token exchange.
type AuthService struct {
	repo       ports.UserRepository
	tokens     *TokenIssuer
	revocation RevocationChecker
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenIssuer, revocation RevocationChecker, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		revocation: revocation,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// An unknown email and a wrong password fail identically so the response
// never reveals whether an account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Deactivated {
		return nil, domain.ErrUserDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.AccessToken(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.RefreshToken(user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", user.Email).Msg("login succeeded")
	return &ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ChangePassword verifies the old password and replaces the stored hash with
// a freshly salted hash of the new one. The update filters on both email and
// role; a zero matched count (the user vanished or changed role since
// authentication) is reported as not-found rather than silent success.
func (s *AuthService) ChangePassword(ctx context.Context, email, role, oldPassword, newPassword string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.Deactivated {
		return domain.ErrUserDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, email, role, string(hash)); err != nil {
		return err
	}

	// Outstanding refresh tokens die with the old password. Stamp failure is
	// logged but not fatal: the password change itself already succeeded.
	if err := s.revocation.StampPasswordChange(ctx, email, time.Now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to stamp password change")
	}

	s.log.Info().Str("email", email).Msg("password changed")
	return nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrTokenInvalid
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return "", err
	}
	if user.Deactivated {
		return "", domain.ErrUserNotFound
	}

	revoked, err := s.revocation.ChangedSince(ctx, claims.Email, claims.IssuedAt)
	if err != nil {
		// Fail open: refusing every refresh while Redis is down would lock
		// out all clients whose access tokens expire in the meantime.
		s.log.Warn().Err(err).Str("email", claims.Email).Msg("revocation check failed, accepting token")
	} else if revoked {
		return "", domain.ErrTokenInvalid
	}

	accessToken, err := s.tokens.AccessToken(user.Email, user.Role)
	if err != nil {
		return "", err
	}

	s.log.Debug().Str("email", user.Email).Msg("access token refreshed")
	return accessToken, nil
}
