package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// successResponse is the canonical envelope for all 2xx responses.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// failureResponse is the canonical envelope for all 4xx/5xx responses.
// Errors is populated only for validation failures.
type failureResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, successResponse{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, failureResponse{Success: false, Message: message})
}

// bindAndValidate decodes the request body into req and validates it.
// On failure the 400 response has already been written; callers must return
// err unmodified and stop.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return false, c.JSON(http.StatusBadRequest, failureResponse{
				Success: false,
				Message: "Validation failed",
				Errors:  ve.Fields,
			})
		}
		return false, err
	}
	return true, nil
}
