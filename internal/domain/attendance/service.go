package attendance

import "context"

type AttendanceService interface {
	// CheckIn verifies the caller's position against the requested zone
	// and appends a check-in event for the current local day.
	CheckIn(ctx context.Context, req CheckInRequest) (EventResponse, error)

	// CheckOut closes the current day's open check-in.
	CheckOut(ctx context.Context, req CheckOutRequest) (EventResponse, error)

	// TodayStatus reports the caller's check-in/out state for today.
	TodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// Monthly builds the gap-free per-day calendar for one month.
	Monthly(ctx context.Context, filter MonthlyFilter) (MonthlyResponse, error)

	// History returns per-day check-in/out pairs for a date range, newest
	// day first.
	History(ctx context.Context, filter HistoryFilter) ([]DayResponse, error)
}
