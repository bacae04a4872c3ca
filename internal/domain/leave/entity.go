package leave

import "time"

// LeaveType is reference data describing one category of leave.
type LeaveType struct {
	ID         string
	Name       string
	MaxPerYear *int
	IsPaid     bool
	CreatedAt  time.Time
}

// Balance is the remaining entitlement for one (employee, leave type) pair.
// BalanceDays is what the employee can still request; PendingDays is the
// amount reserved by pending applications. Both are adjusted only inside
// lifecycle transitions and never go negative.
type Balance struct {
	EmployeeID  string
	LeaveTypeID string
	BalanceDays float64
	PendingDays float64
	UpdatedAt   time.Time

	// Joined for responses
	LeaveTypeName *string
}

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCancelled ApplicationStatus = "cancelled"
)

// Application is a leave request. Created pending; pending moves to
// approved or rejected; approved may still be cancelled. Rejected and
// cancelled are terminal.
type Application struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	// Days is the working-day count of [StartDate, EndDate], fixed at
	// apply time.
	Days      int
	Reason    *string
	Status    ApplicationStatus
	AppliedAt time.Time
	DecidedAt *time.Time
	DecidedBy *string
	Remarks   *string

	// Joined for responses
	LeaveTypeName *string
}
