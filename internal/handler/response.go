package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"journeys/internal/repository"
	"journeys/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain confirmation response.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unrecognized errors get a generic body so internals never leak.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	// Validation and business rule errors - Bad Request
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrMissingRegistrationData),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrMissingBookingData),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrBookingNotUpcoming),
		errors.Is(err, service.ErrBookingNotCancellable),
		errors.Is(err, service.ErrBookingNotOngoing),
		errors.Is(err, service.ErrMissingCities),
		errors.Is(err, service.ErrMissingContactFields),
		errors.Is(err, service.ErrNotADriver):
		return http.StatusBadRequest

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
