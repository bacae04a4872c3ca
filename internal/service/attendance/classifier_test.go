package attendance

import (
	"testing"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func testClassifier() Classifier {
	return Classifier{
		Location:        time.UTC,
		ThresholdHour:   9,
		ThresholdMinute: 0,
	}
}

func checkInAt(t time.Time) *attendance.Event {
	return &attendance.Event{
		Kind:      attendance.EventCheckIn,
		Timestamp: t.UTC(),
		Date:      t.UTC().Format("2006-01-02"),
	}
}

func TestClassifier_Classify_PresentBeforeThreshold(t *testing.T) {
	c := testClassifier()

	// Tuesday 2025-06-10, check-in 08:45
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkIn := checkInAt(time.Date(2025, 6, 10, 8, 45, 0, 0, time.UTC))
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusPresent, c.Classify(date, checkIn, today))
}

func TestClassifier_Classify_LateAfterThreshold(t *testing.T) {
	c := testClassifier()

	// Tuesday 2025-06-10, check-in 09:15
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkIn := checkInAt(time.Date(2025, 6, 10, 9, 15, 0, 0, time.UTC))
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusLate, c.Classify(date, checkIn, today))
}

func TestClassifier_Classify_ExactThresholdIsPresent(t *testing.T) {
	c := testClassifier()

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkIn := checkInAt(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusPresent, c.Classify(date, checkIn, today))
}

func TestClassifier_Classify_WeekendBeatsCheckIn(t *testing.T) {
	c := testClassifier()

	// Saturday 2025-06-14, even with a late check-in present
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	checkIn := checkInAt(time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC))
	today := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusWeekend, c.Classify(date, checkIn, today))
}

func TestClassifier_Classify_FutureWeekday(t *testing.T) {
	c := testClassifier()

	date := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusFuture, c.Classify(date, nil, today))
}

func TestClassifier_Classify_AbsentPastWeekday(t *testing.T) {
	c := testClassifier()

	date := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusAbsent, c.Classify(date, nil, today))
}

func TestClassifier_Classify_TodayWithoutCheckInIsAbsent(t *testing.T) {
	c := testClassifier()

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusAbsent, c.Classify(date, nil, today))
}

func TestClassifier_Classify_ThresholdInLocalTime(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	assert.NoError(t, err)

	c := Classifier{Location: dhaka, ThresholdHour: 9, ThresholdMinute: 0}

	// 03:15 UTC is 09:15 in Dhaka (UTC+6): late there, not in UTC.
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, dhaka)
	checkIn := checkInAt(time.Date(2025, 6, 10, 3, 15, 0, 0, time.UTC))
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, dhaka)

	assert.Equal(t, attendance.StatusLate, c.Classify(date, checkIn, today))
}

func TestClassifier_BuildMonth_GapFreeAscending(t *testing.T) {
	c := testClassifier()

	// June 2025 has 30 days; no events at all.
	today := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	days := c.BuildMonth(2025, time.June, nil, today)

	assert.Len(t, days, 30)
	for i, d := range days {
		assert.Equal(t, i+1, d.Date.Day())
	}
}

func TestClassifier_BuildMonth_StatusMix(t *testing.T) {
	c := testClassifier()

	// Viewed from the middle of the month: Mon 2025-06-09 present,
	// Tue 2025-06-10 late, Wed 2025-06-11 absent, rest future or weekend.
	events := []attendance.Event{
		{Kind: attendance.EventCheckIn, Timestamp: time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC), Date: "2025-06-09"},
		{Kind: attendance.EventCheckOut, Timestamp: time.Date(2025, 6, 9, 17, 30, 0, 0, time.UTC), Date: "2025-06-09"},
		{Kind: attendance.EventCheckIn, Timestamp: time.Date(2025, 6, 10, 9, 15, 0, 0, time.UTC), Date: "2025-06-10"},
	}
	today := time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)

	days := c.BuildMonth(2025, time.June, events, today)
	assert.Len(t, days, 30)

	byDay := make(map[int]attendance.Day)
	for _, d := range days {
		byDay[d.Date.Day()] = d
	}

	assert.Equal(t, attendance.StatusPresent, byDay[9].Status)
	assert.InDelta(t, 9.0, byDay[9].WorkingHours, 0.001)
	assert.Equal(t, attendance.StatusLate, byDay[10].Status)
	assert.Equal(t, attendance.StatusAbsent, byDay[11].Status)
	assert.Equal(t, attendance.StatusFuture, byDay[12].Status)
	assert.Equal(t, attendance.StatusWeekend, byDay[7].Status)
	assert.Equal(t, attendance.StatusWeekend, byDay[8].Status)

	summary := Summarize(days)
	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, 1, summary.LateDays)
	// Weekdays 2-6 and 11 have no check-in and are not in the future.
	assert.Equal(t, 6, summary.AbsentDays)
}
