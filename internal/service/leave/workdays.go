package leave

import "time"

// WorkingDays counts the weekdays (Mon-Fri) in the inclusive range
// [start, end]. It returns 0 when end is before start; callers treat 0 as
// an invalid range. Holidays are not modeled.
func WorkingDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
