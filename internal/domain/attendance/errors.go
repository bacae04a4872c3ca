package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")

	// Check-out errors
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	// ErrClockSkew: the reported check-out instant precedes the day's
	// check-in. The write is refused rather than clamped so a broken
	// client clock surfaces instead of producing a zero-length day.
	ErrClockSkew = errors.New("check-out time is before today's check-in")

	// ErrDuplicateEvent is returned by the repository when the per-day
	// uniqueness constraint rejects an append.
	ErrDuplicateEvent = errors.New("attendance event already recorded for this day")
)
