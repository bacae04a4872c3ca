package leave

import (
	"errors"
	"fmt"
)

var (
	ErrApplicationNotFound = errors.New("leave application not found")
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrBalanceNotFound     = errors.New("no leave balance for this leave type")

	// ErrInvalidDateRange: the requested range contains no working days
	// (end before start, or weekend-only).
	ErrInvalidDateRange = errors.New("date range contains no working days")
	ErrStartDateInPast  = errors.New("start date cannot be in the past")
	ErrOverlappingLeave = errors.New("an existing leave request overlaps these dates")

	// ErrAlreadyProcessed: approve/reject on a request that is no longer
	// pending.
	ErrAlreadyProcessed = errors.New("leave application has already been processed")
	// ErrNotCancelable: cancel on a rejected or already-cancelled request.
	ErrNotCancelable = errors.New("leave application can no longer be cancelled")
)

// InsufficientBalanceError reports an apply attempt exceeding the available
// balance, with the shortfall detail for client display.
type InsufficientBalanceError struct {
	AvailableDays float64
	RequestedDays int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: available %.1f days, requested %d days",
		e.AvailableDays, e.RequestedDays)
}
