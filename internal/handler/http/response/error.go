package response

import (
	"errors"
	"net/http"

	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/domain/employee"
	"github.com/wathiq-erp/attendance-engine/internal/domain/notification"
	"github.com/wathiq-erp/attendance-engine/internal/domain/punch"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/validator"
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
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Attendance summary not found")
	case errors.Is(err, attendance.ErrTimesheetNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, punch.ErrEmptyBatch):
		BadRequest(w, "Punch batch is empty", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
