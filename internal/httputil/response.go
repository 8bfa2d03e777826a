// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/onetime/internal/errors"
)

// NotFoundMessage is the single message every not-found class failure carries.
const NotFoundMessage = "The secret you are looking for could not be located"

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

var notFoundResponse = ErrorResponse{
	Error:   "not_found",
	Message: NotFoundMessage,
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
//
// Everything that wraps ErrNotFound produces the same body, so an unknown identifier, an
// expired or consumed secret and a wrong password cannot be told apart.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = notFoundResponse

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		errorResponse = ErrorResponse{
			Error:   "service_unavailable",
			Message: "The service is temporarily unavailable",
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	// Not-found is the expected outcome of guessing; keep it out of the error log
	if logger != nil {
		level := slog.LevelError
		if statusCode == http.StatusNotFound {
			level = slog.LevelInfo
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleNotFoundGin writes the not-found response for requests rejected before reaching
// a use case, such as a malformed identifier. The body matches HandleErrorGin's.
func HandleNotFoundGin(c *gin.Context, reason string, logger *slog.Logger) {
	if logger != nil {
		logger.Info("request rejected as not found", slog.String("reason", reason))
	}

	c.JSON(http.StatusNotFound, notFoundResponse)
}

// BadRequestMessage is returned for every unparseable request; decoder details stay in the log.
const BadRequestMessage = "The request body could not be parsed"

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: BadRequestMessage,
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}
