package leave

import "context"

type LeaveService interface {
	// Apply creates a pending application and reserves its working days
	// against the caller's balance.
	Apply(ctx context.Context, req ApplyRequest) (ApplicationResponse, error)

	// Cancel cancels the caller's pending or approved application,
	// releasing or crediting the reserved days.
	Cancel(ctx context.Context, id string) (ApplicationResponse, error)

	// Approve commits a pending application's reservation. HR only.
	Approve(ctx context.Context, req DecisionRequest) (ApplicationResponse, error)

	// Reject releases a pending application's reservation. HR only.
	Reject(ctx context.Context, req DecisionRequest) (ApplicationResponse, error)

	Types(ctx context.Context) ([]LeaveTypeResponse, error)
	Balances(ctx context.Context) ([]BalanceResponse, error)

	// MyApplications lists the caller's applications, optionally filtered
	// by status, newest first.
	MyApplications(ctx context.Context, status string) ([]ApplicationResponse, error)

	// Applications lists applications across employees for HR review.
	Applications(ctx context.Context, status string, employeeID string) ([]ApplicationResponse, error)

	// PendingApplications lists all applications awaiting a decision.
	PendingApplications(ctx context.Context) ([]ApplicationResponse, error)
}
