package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-api/internal/api/metrics"
	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  failureResponse
// @Failure      409   {object}  failureResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return respondError(c, http.StatusConflict, "An account with this email already exists.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return respondError(c, http.StatusBadRequest, "Invalid registration details.")
		}
		return err
	}

	return respond(c, http.StatusCreated, "User registered successfully!", registeredUserData{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  failureResponse
// @Failure      401   {object}  failureResponse
// @Failure      403   {object}  failureResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	pair, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return respondError(c, http.StatusUnauthorized, "Invalid email or password.")
		case errors.Is(err, domain.ErrUserDeactivated):
			return respondError(c, http.StatusForbidden, "Your account is deactivated. Contact an admin to activate it first.")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "Login successful!", loginData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// ChangePassword replaces the authenticated user's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  failureResponse
// @Failure      401   {object}  failureResponse
// @Failure      404   {object}  failureResponse
// @Router       /v1/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	email, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	err = h.service.ChangePassword(c.Request().Context(), email, role, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return respondError(c, http.StatusNotFound, "User account not found.")
		case errors.Is(err, domain.ErrUserDeactivated):
			return respondError(c, http.StatusBadRequest, "Your account is deactivated.")
		case errors.Is(err, domain.ErrPasswordMismatch):
			return respondError(c, http.StatusBadRequest, "Old password is incorrect. Please try again.")
		}
		return err
	}

	return respond(c, http.StatusOK, "Password changed successfully!", map[string]any{})
}

// Refresh exchanges a refresh token for a new access token. The token is read
// from the JSON body, falling back to a bearer Authorization header.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  failureResponse
// @Failure      404   {object}  failureResponse
// @Router       /v1/auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}

	token := req.RefreshToken
	if token == "" {
		token = bearerToken(c)
	}
	if token == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return respondError(c, http.StatusUnauthorized, "Authorization is required to access this resource.")
	}

	accessToken, err := h.service.Refresh(c.Request().Context(), token)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		switch {
		case errors.Is(err, domain.ErrTokenInvalid):
			return respondError(c, http.StatusUnauthorized, "Invalid or expired refresh token.")
		case errors.Is(err, domain.ErrUserNotFound):
			return respondError(c, http.StatusNotFound, "User account not found.")
		}
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "Access token refreshed successfully!", refreshData{
		AccessToken: accessToken,
	})
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
