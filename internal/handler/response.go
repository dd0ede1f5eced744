package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation = "https://fortuna.app/errors/validation"
	ErrorTypeBadGateway = "https://fortuna.app/errors/store-unavailable"
	ErrorTypeInternal   = "https://fortuna.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewBadGatewayError creates an error response for a failed call to the finance store
func NewBadGatewayError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadGateway, ProblemDetails{
		Type:     ErrorTypeBadGateway,
		Title:    "Store Request Failed",
		Status:   http.StatusBadGateway,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// respondError maps model and store failures onto problem details
func respondError(c echo.Context, err error, action string) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: verr.Field, Message: verr.Error()},
		})
	}

	var terr *domain.TransportError
	if errors.As(err, &terr) {
		log.Warn().Err(err).Str("op", terr.Op).Int("store_status", terr.StatusCode).Msg(action)
		return NewBadGatewayError(c, terr.Message)
	}

	log.Error().Err(err).Msg(action)
	return NewInternalError(c, action)
}

// fieldError builds a single-field validation response
func fieldError(c echo.Context, field, message string) error {
	return NewValidationError(c, "Validation failed", []ValidationError{
		{Field: field, Message: message},
	})
}
