package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/repository"
	"albaniarides/internal/service"
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
	case errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrInvalidMagicLink),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrBioTooLong),
		errors.Is(err, service.ErrInvalidDrivingYears),
		errors.Is(err, service.ErrCarInfoRequired),
		errors.Is(err, service.ErrInvalidCity),
		errors.Is(err, service.ErrSameCities),
		errors.Is(err, service.ErrDepartureInPast),
		errors.Is(err, service.ErrInvalidSeatsTotal),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrCommentTooLong),
		errors.Is(err, service.ErrSelfRating),
		errors.Is(err, service.ErrInvalidMessage):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrPhoneTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInsufficientSeats),
		errors.Is(err, service.ErrDuplicateBooking),
		errors.Is(err, service.ErrDuplicateRating),
		errors.Is(err, service.ErrRideNotActive),
		errors.Is(err, service.ErrRideNotCompleted),
		errors.Is(err, service.ErrBookingNotActive),
		errors.Is(err, service.ErrCancelWindowClosed),
		errors.Is(err, service.ErrSeatsBelowBooked):
		return http.StatusConflict

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrAccountSuspended),
		errors.Is(err, service.ErrNotDriver),
		errors.Is(err, service.ErrNotRideOwner),
		errors.Is(err, service.ErrOwnRide),
		errors.Is(err, service.ErrNotBookingParty),
		errors.Is(err, service.ErrNotRideParticipant):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
