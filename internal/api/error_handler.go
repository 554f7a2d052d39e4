package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-api/internal/api/handler"
	"github.com/rentwheels/rental-api/internal/core/domain"
)

// errorEnvelope is the canonical error body rendered by the fallback handler.
// CorrelationID is set only for unclassified 500s so a client report can be
// matched against the server log.
type errorEnvelope struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Errors        map[string]string `json:"errors,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their taxonomy HTTP status codes.
//   - Logs unexpected errors internally, keyed by a correlation id, without
//     leaking details to the client.
//   - Renders the same {success,message} envelope the handlers use.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorEnvelope) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorEnvelope{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Validation failures that escaped a handler.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorEnvelope{Message: "Validation failed", Errors: ve.Fields}
	}

	// Known domain errors → deterministic taxonomy codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorEnvelope{Message: "invalid credentials"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, errorEnvelope{Message: "invalid or expired token"}
	case errors.Is(err, domain.ErrUserDeactivated), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorEnvelope{Message: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "user not found"}
	case errors.Is(err, domain.ErrCarNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "car not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorEnvelope{Message: "user already exists"}
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, errorEnvelope{Message: "old password is incorrect"}
	}

	// Unexpected error: log the real cause, return a generic message plus a
	// correlation reference. The raw error never reaches the client.
	correlationID := uuid.NewString()
	log.Error().
		Err(err).
		Str("correlation_id", correlationID).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorEnvelope{
		Message:       "internal server error",
		CorrelationID: correlationID,
	}
}
