package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

type stubAuthService struct {
	registerErr error
	loginPair   *ports.TokenPair
	loginErr    error
	changeErr   error
	refreshTok  string
	refreshErr  error

	loginEmail    string
	changedEmail  string
	refreshedWith string
}

func (s *stubAuthService) Register(_ context.Context, email, _, role string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{ID: "user_1", Email: email, Role: role}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*ports.TokenPair, error) {
	s.loginEmail = email
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginPair, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, email, _, _, _ string) error {
	s.changedEmail = email
	return s.changeErr
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	s.refreshedWith = refreshToken
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return s.refreshTok, nil
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{loginPair: &ports.TokenPair{AccessToken: "access", RefreshToken: "refresh"}}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"hunter2hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != true {
		t.Fatalf("expected success envelope, got %v", envelope)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["accessToken"] != "access" || data["refreshToken"] != "refresh" {
		t.Fatalf("unexpected token data: %v", data)
	}
	if svc.loginEmail != "alice@example.com" {
		t.Fatalf("service called with %q", svc.loginEmail)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"wrongwrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != false {
		t.Fatalf("expected failure envelope, got %v", envelope)
	}
}

func TestAuthHandler_Login_Deactivated(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrUserDeactivated}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"hunter2hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingEmail(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"password":"hunter2hunter2"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	errs, _ := envelope["errors"].(map[string]any)
	if errs["email"] != "email is required" {
		t.Fatalf("expected email validation error, got %v", errs)
	}
	if svc.loginEmail != "" {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"email":"bob@example.com","password":"longenough"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data, _ := envelope["data"].(map[string]any)
	if data["email"] != "bob@example.com" || data["role"] != domain.RoleUser {
		t.Fatalf("unexpected registered user: %v", data)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"email":"bob@example.com","password":"longenough"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"oldPassword":"hunter2hunter2","newPassword":"evenbetterpass"}`)
	c.Set("email", "alice@example.com")
	c.Set("role", domain.RoleUser)

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.changedEmail != "alice@example.com" {
		t.Fatalf("service called with %q", svc.changedEmail)
	}
}

func TestAuthHandler_ChangePassword_NoClaims(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"oldPassword":"hunter2hunter2","newPassword":"evenbetterpass"}`)

	err := h.ChangePassword(c)
	if err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if svc.changedEmail != "" {
		t.Fatalf("service should not be called without claims")
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	svc := &stubAuthService{changeErr: domain.ErrPasswordMismatch}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"oldPassword":"wrongwrongwrong","newPassword":"evenbetterpass"}`)
	c.Set("email", "alice@example.com")
	c.Set("role", domain.RoleUser)

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_SamePassword(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"oldPassword":"hunter2hunter2","newPassword":"hunter2hunter2"}`)
	c.Set("email", "alice@example.com")
	c.Set("role", domain.RoleUser)

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.changedEmail != "" {
		t.Fatalf("service should not be called when passwords match")
	}
}

func TestAuthHandler_Refresh_FromBody(t *testing.T) {
	svc := &stubAuthService{refreshTok: "new-access"}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"refreshToken":"refresh-token"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data, _ := envelope["data"].(map[string]any)
	if data["accessToken"] != "new-access" {
		t.Fatalf("unexpected data: %v", data)
	}
	if svc.refreshedWith != "refresh-token" {
		t.Fatalf("service called with %q", svc.refreshedWith)
	}
}

func TestAuthHandler_Refresh_FromHeader(t *testing.T) {
	svc := &stubAuthService{refreshTok: "new-access"}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{}`)
	c.Request().Header.Set("Authorization", "Bearer header-token")

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.refreshedWith != "header-token" {
		t.Fatalf("service called with %q", svc.refreshedWith)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if svc.refreshedWith != "" {
		t.Fatalf("service should not be called without a token")
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	svc := &stubAuthService{refreshErr: domain.ErrTokenInvalid}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"refreshToken":"tampered"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
