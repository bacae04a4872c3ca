package attendance

import (
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
)

// Classifier derives per-day attendance statuses from ledger events. It is
// a pure computation: "today" is always passed in by the caller, never read
// from the system clock, so month views are reproducible in tests.
type Classifier struct {
	// Location is the organization's local time zone; weekday and
	// late-threshold comparisons happen in it.
	Location *time.Location

	// Check-ins strictly after this local time are late.
	ThresholdHour   int
	ThresholdMinute int
}

// Classify returns the status of one calendar day. Priority is strict:
// weekend beats everything, future beats absence, and absence applies only
// to past or current weekdays with no check-in.
func (c Classifier) Classify(date time.Time, checkIn *attendance.Event, today time.Time) attendance.DayStatus {
	day := dateOnly(date, c.Location)
	ref := dateOnly(today, c.Location)

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return attendance.StatusWeekend
	}

	if day.After(ref) {
		return attendance.StatusFuture
	}

	if checkIn == nil {
		return attendance.StatusAbsent
	}

	threshold := time.Date(day.Year(), day.Month(), day.Day(),
		c.ThresholdHour, c.ThresholdMinute, 0, 0, c.Location)

	if checkIn.Timestamp.In(c.Location).After(threshold) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// BuildMonth produces one Day per calendar day of (year, month), ascending
// and gap-free. Days without events resolve to weekend, absent or future.
func (c Classifier) BuildMonth(year int, month time.Month, events []attendance.Event, today time.Time) []attendance.Day {
	byDate := groupByDate(events)

	first := time.Date(year, month, 1, 0, 0, 0, 0, c.Location)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]attendance.Day, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, c.Location)
		pair := byDate[date.Format("2006-01-02")]

		days = append(days, attendance.Day{
			Date:         date,
			CheckIn:      pair.checkIn,
			CheckOut:     pair.checkOut,
			WorkingHours: attendance.WorkingHours(pair.checkIn, pair.checkOut),
			Status:       c.Classify(date, pair.checkIn, today),
		})
	}
	return days
}

// Summarize counts the working-day statuses of a month.
func Summarize(days []attendance.Day) attendance.MonthSummary {
	var s attendance.MonthSummary
	for _, d := range days {
		switch d.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusLate:
			s.LateDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		}
	}
	return s
}

type eventPair struct {
	checkIn  *attendance.Event
	checkOut *attendance.Event
}

func groupByDate(events []attendance.Event) map[string]eventPair {
	byDate := make(map[string]eventPair)
	for i := range events {
		ev := events[i]
		pair := byDate[ev.Date]
		switch ev.Kind {
		case attendance.EventCheckIn:
			pair.checkIn = &events[i]
		case attendance.EventCheckOut:
			pair.checkOut = &events[i]
		}
		byDate[ev.Date] = pair
	}
	return byDate
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
