package attendance

import "context"

// EventRepository defines data access for the append-only attendance event
// ledger. There is deliberately no Update or Delete: events are immutable
// once written.
type EventRepository interface {
	// Append inserts a new event. Returns ErrDuplicateEvent when an event
	// of the same kind already exists for the employee on the event's
	// local date.
	Append(ctx context.Context, event Event) (Event, error)

	// GetByEmployeeAndDate returns the events (at most one check-in and
	// one check-out) for an employee on one local calendar day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) ([]Event, error)

	// ListByEmployeeBetween returns all events for an employee with local
	// dates in [from, to], ordered by timestamp ascending.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to string) ([]Event, error)
}
