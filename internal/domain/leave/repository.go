package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - leave_types is reference data; rows are seeded by
// operations, not managed through this API.
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// BalanceRepository defines data access for leave balances. The mutating
// methods are single guarded UPDATEs so a balance can never be driven
// negative; each reports whether a row actually changed.
type BalanceRepository interface {
	GetByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	Get(ctx context.Context, employeeID, leaveTypeID string) (Balance, error)

	// Reserve moves days from balance_days into pending_days. Returns
	// false when the balance row is missing or balance_days < days.
	Reserve(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error)

	// Release moves a reservation back into balance_days (reject, or
	// cancel of a pending request).
	Release(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error)

	// Commit burns a reservation (approval): pending_days shrinks and the
	// debit becomes permanent.
	Commit(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error)

	// Credit adds days back to balance_days (cancel of an approved
	// request).
	Credit(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error)
}

// ApplicationRepository defines data access for leave applications.
type ApplicationRepository interface {
	Create(ctx context.Context, application Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)

	ListByEmployee(ctx context.Context, employeeID string, status *ApplicationStatus) ([]Application, error)
	List(ctx context.Context, status *ApplicationStatus, employeeID *string) ([]Application, error)

	// HasOverlapping reports whether any pending or approved application
	// for the employee intersects [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// UpdateStatus transitions id from status `from` to `to`. Returns
	// false without error when the row is not currently in `from`; this
	// is the serialization point for concurrent decisions.
	UpdateStatus(ctx context.Context, id string, from, to ApplicationStatus, decidedBy *string, decidedAt *time.Time, remarks *string) (bool, error)
}
