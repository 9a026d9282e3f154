package response

import (
	"errors"
	"net/http"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/auth"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideZone):
		Forbidden(w, "You are not inside any assigned shift zone")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An attendance session is already open")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
