package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoport/internal/auth"
	"ecoport/internal/pricing"
	"ecoport/internal/repository"
	"ecoport/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
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

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidPickupID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrMissingWasteImage),
		errors.Is(err, service.ErrImageTooLarge),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidRatingStars),
		errors.Is(err, service.ErrMissingRequiredField),
		errors.Is(err, service.ErrOutsideServiceArea),
		errors.Is(err, pricing.ErrInvalidCoordinate):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrPickupNotApproved),
		errors.Is(err, service.ErrDriverNotAvailable),
		errors.Is(err, service.ErrPickupNotCompleted),
		errors.Is(err, service.ErrAlreadyRated):
		return http.StatusConflict

	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
