package leave

import (
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Reason      *string `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be formatted YYYY-MM-DD",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be formatted YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	ID      string  `json:"-"`
	Remarks *string `json:"remarks"`
}

type ApplicationResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Days          int     `json:"days"`
	Reason        *string `json:"reason,omitempty"`
	Status        string  `json:"status"`
	AppliedAt     string  `json:"applied_at"`
	DecidedAt     *string `json:"decided_at,omitempty"`
	DecidedBy     *string `json:"decided_by,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

type BalanceResponse struct {
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	BalanceDays   float64 `json:"balance_days"`
	PendingDays   float64 `json:"pending_days"`
}

type LeaveTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MaxPerYear *int   `json:"max_per_year,omitempty"`
	IsPaid     bool   `json:"is_paid"`
}
