package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// TokenClaims is the payload embedded in both token kinds.
type TokenClaims struct {
	Email    string
	Role     string
	IssuedAt time.Time
}

// TokenIssuer signs and verifies HS256 JWTs. Access and refresh tokens use
// independent secret/TTL pairs so a leaked access token never extends a session.
type TokenIssuer struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &TokenIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// AccessToken signs a short-lived token for per-request authentication.
func (t *TokenIssuer) AccessToken(email, role string) (string, error) {
	return t.sign(email, role, t.accessSecret, t.accessTTL)
}

// RefreshToken signs a longer-lived token used solely to mint new access tokens.
func (t *TokenIssuer) RefreshToken(email, role string) (string, error) {
	return t.sign(email, role, t.refreshSecret, t.refreshTTL)
}

func (t *TokenIssuer) sign(email, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyRefresh parses a refresh token and returns its claims. Tampered,
// expired, or non-HS256 tokens yield domain.ErrTokenInvalid.
func (t *TokenIssuer) VerifyRefresh(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(t.refreshSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if email == "" || role == "" {
		return nil, domain.ErrTokenInvalid
	}

	out := &TokenClaims{Email: email, Role: role}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}
