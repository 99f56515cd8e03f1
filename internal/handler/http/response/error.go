package response

import (
	"errors"
	"net/http"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/domain/auth"
	"github.com/fleetops/attendance-backend-go/internal/domain/trend"
	"github.com/fleetops/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid access key")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or malformed token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoUsageData):
		NotFound(w, "No usage rows recorded for the requested date")
	case errors.Is(err, attendance.ErrReportNotFound):
		NotFound(w, "Daily report not found")
	case errors.Is(err, attendance.ErrNoExportFile):
		NotFound(w, "No daily usage export file found")

	// Trend domain errors
	case errors.Is(err, trend.ErrEmptyWindow):
		NotFound(w, "No classified days in the requested window")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
