package attendance

import (
	"time"
)

// EventKind discriminates the two attendance event types.
type EventKind string

const (
	EventCheckIn  EventKind = "check_in"
	EventCheckOut EventKind = "check_out"
)

// Event is a single immutable attendance record. Events are only ever
// appended; corrections happen by administrative review outside this ledger,
// never by mutating a stored event.
type Event struct {
	ID         string
	EmployeeID string
	Kind       EventKind
	// Timestamp is the absolute UTC instant of the event.
	Timestamp time.Time
	// Date is the organization-local calendar day the event belongs to,
	// formatted 2006-01-02. At most one check-in and one check-out exist
	// per employee per Date.
	Date      string
	Latitude  float64
	Longitude float64
	// ZoneID is the verified zone for check-ins. Check-outs carry the
	// check-in's zone for audit; it is not re-verified.
	ZoneID    *string
	CreatedAt time.Time
}

// DayStatus is the derived classification of one calendar day.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusAbsent  DayStatus = "absent"
	StatusWeekend DayStatus = "weekend"
	StatusFuture  DayStatus = "future"
)

// Day is the derived per-day view of the event ledger. It is recomputed on
// read and never stored.
type Day struct {
	Date         time.Time
	CheckIn      *Event
	CheckOut     *Event
	WorkingHours float64
	Status       DayStatus
}

// TodayStatus summarizes the current day for one employee.
type TodayStatus struct {
	HasCheckedIn  bool
	HasCheckedOut bool
	CheckIn       *Event
	CheckOut      *Event
	WorkingHours  float64
}

// MonthSummary aggregates day statuses over one month.
type MonthSummary struct {
	PresentDays int
	LateDays    int
	AbsentDays  int
}

// WorkingHours returns the hours between check-in and check-out, 0 when
// either side is missing.
func WorkingHours(checkIn, checkOut *Event) float64 {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	return checkOut.Timestamp.Sub(checkIn.Timestamp).Hours()
}
