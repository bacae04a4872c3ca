package response

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/employee"
	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/domain/zone"
	"github.com/attendly/attendly-backend-go/internal/pkg/geo"
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Typed errors carry details the flat sentinels cannot.
	var outOfRange *zone.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), map[string]string{
			"distance": geo.FormatDistance(outOfRange.DistanceMeters),
			"radius":   fmt.Sprintf("%d m", outOfRange.RadiusMeters),
		})
		return
	}

	var insufficient *leave.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		BadRequest(w, insufficient.Error(), map[string]string{
			"available_days": strconv.FormatFloat(insufficient.AvailableDays, 'f', -1, 64),
			"requested_days": strconv.Itoa(insufficient.RequestedDays),
		})
		return
	}

	switch {
	// Access errors
	case errors.Is(err, employee.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, employee.ErrHRAccessRequired):
		Forbidden(w, "HR access required")
	case errors.Is(err, employee.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Zone domain errors
	case errors.Is(err, zone.ErrZoneNotFound):
		NotFound(w, "Zone not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in recorded today")
	case errors.Is(err, attendance.ErrDuplicateEvent):
		Conflict(w, "Attendance event already recorded")
	case errors.Is(err, attendance.ErrClockSkew):
		BadRequest(w, "Check-out time is before check-in time", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Leave date range contains no working days", nil)
	case errors.Is(err, leave.ErrStartDateInPast):
		BadRequest(w, "Leave cannot start in the past", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave dates overlap an existing request")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave application already processed")
	case errors.Is(err, leave.ErrNotCancelable):
		Conflict(w, "Leave application can no longer be cancelled")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
