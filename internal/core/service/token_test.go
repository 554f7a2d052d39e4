package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

func TestTokenIssuer_DistinctTokens(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	access, err := issuer.AccessToken("alice@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("access token: %v", err)
	}
	refresh, err := issuer.RefreshToken("alice@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}

	if access == "" || refresh == "" {
		t.Fatalf("expected non-empty tokens")
	}
	if access == refresh {
		t.Fatalf("access and refresh tokens must differ")
	}

	accessExp := tokenExp(t, access, "access-secret")
	refreshExp := tokenExp(t, refresh, "refresh-secret")
	if !refreshExp.After(accessExp) {
		t.Fatalf("refresh expiry %v should be after access expiry %v", refreshExp, accessExp)
	}
}

func TestTokenIssuer_VerifyRefresh(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	refresh, err := issuer.RefreshToken("bob@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}

	claims, err := issuer.VerifyRefresh(refresh)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "bob@example.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.IssuedAt.IsZero() {
		t.Fatalf("expected issued-at to be set")
	}
}

func TestTokenIssuer_VerifyRefresh_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	other := NewTokenIssuer("access-secret", "other-secret", 15*time.Minute, 24*time.Hour)

	refresh, err := other.RefreshToken("bob@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}

	if _, err := issuer.VerifyRefresh(refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenIssuer_VerifyRefresh_Expired(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	expired := signRefreshToken(t, "refresh-secret", "bob@example.com", domain.RoleAdmin, time.Now().Add(-time.Hour))
	if _, err := issuer.VerifyRefresh(expired); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestTokenIssuer_VerifyRefresh_AccessTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	access, err := issuer.AccessToken("bob@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("access token: %v", err)
	}

	// An access token is signed with the access secret; it must never pass
	// refresh verification.
	if _, err := issuer.VerifyRefresh(access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func tokenExp(t *testing.T, token, secret string) time.Time {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	return exp.Time
}

func signRefreshToken(t *testing.T, secret, email, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"iat":   exp.Add(-time.Hour).Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
