package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/duedate/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Input errors
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusUnprocessableEntity, "INVALID_FORMAT", message
	case errors.Is(err, domain.ErrInvalidSubmissionWindow):
		return http.StatusUnprocessableEntity, "INVALID_SUBMISSION_WINDOW", message
	case errors.Is(err, domain.ErrInvalidTurnaround):
		return http.StatusUnprocessableEntity, "INVALID_TURNAROUND", message
	case errors.Is(err, domain.ErrInvalidTitle):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Task errors
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
