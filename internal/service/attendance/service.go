package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/zone"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/geo"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	tx database.TxRunner
	attendance.EventRepository
	zone.ZoneRepository

	classifier Classifier
	location   *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	tx database.TxRunner,
	eventRepo attendance.EventRepository,
	zoneRepo zone.ZoneRepository,
	classifier Classifier,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:              tx,
		EventRepository: eventRepo,
		ZoneRepository:  zoneRepo,
		classifier:      classifier,
		location:        classifier.Location,
		now:             time.Now,
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	z, err := a.ZoneRepository.GetByID(ctx, req.ZoneID)
	if err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return attendance.EventResponse{}, zone.ErrZoneNotFound
		}
		return attendance.EventResponse{}, fmt.Errorf("failed to get zone: %w", err)
	}

	position := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	if err := z.AuthorizeCheckIn(position); err != nil {
		return attendance.EventResponse{}, err
	}

	nowUTC := a.now().UTC()
	dateLocal := nowUTC.In(a.location).Format("2006-01-02")

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to generate event id: %w", err)
	}

	event := attendance.Event{
		ID:         id.String(),
		EmployeeID: employeeID,
		Kind:       attendance.EventCheckIn,
		Timestamp:  nowUTC,
		Date:       dateLocal,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		ZoneID:     &z.ID,
	}

	// The read and the append run in one transaction; the unique index on
	// (employee_id, date, kind) closes the race two concurrent requests
	// would otherwise win together.
	var created attendance.Event
	err = a.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := a.EventRepository.GetByEmployeeAndDate(ctx, employeeID, dateLocal)
		if err != nil {
			return fmt.Errorf("failed to load today's events: %w", err)
		}
		if findEvent(existing, attendance.EventCheckIn) != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		created, err = a.EventRepository.Append(ctx, event)
		if err != nil {
			if errors.Is(err, attendance.ErrDuplicateEvent) {
				return attendance.ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to append check-in event: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return mapEventToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Check-out needs no zone:
// the position is recorded for audit but only an open check-in is required.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	nowUTC := a.now().UTC()
	dateLocal := nowUTC.In(a.location).Format("2006-01-02")

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to generate event id: %w", err)
	}

	var created attendance.Event
	err = a.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := a.EventRepository.GetByEmployeeAndDate(ctx, employeeID, dateLocal)
		if err != nil {
			return fmt.Errorf("failed to load today's events: %w", err)
		}

		checkIn := findEvent(existing, attendance.EventCheckIn)
		if checkIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if findEvent(existing, attendance.EventCheckOut) != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if nowUTC.Before(checkIn.Timestamp) {
			return attendance.ErrClockSkew
		}

		event := attendance.Event{
			ID:         id.String(),
			EmployeeID: employeeID,
			Kind:       attendance.EventCheckOut,
			Timestamp:  nowUTC,
			Date:       dateLocal,
			Latitude:   req.Latitude,
			Longitude:  req.Longitude,
			ZoneID:     checkIn.ZoneID,
		}

		created, err = a.EventRepository.Append(ctx, event)
		if err != nil {
			if errors.Is(err, attendance.ErrDuplicateEvent) {
				return attendance.ErrAlreadyCheckedOut
			}
			return fmt.Errorf("failed to append check-out event: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return mapEventToResponse(created), nil
}

// TodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	dateLocal := a.now().UTC().In(a.location).Format("2006-01-02")

	events, err := a.EventRepository.GetByEmployeeAndDate(ctx, employeeID, dateLocal)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to load today's events: %w", err)
	}

	checkIn := findEvent(events, attendance.EventCheckIn)
	checkOut := findEvent(events, attendance.EventCheckOut)

	return attendance.TodayStatusResponse{
		HasCheckedIn:  checkIn != nil,
		HasCheckedOut: checkOut != nil,
		CheckIn:       mapEventPtr(checkIn),
		CheckOut:      mapEventPtr(checkOut),
		WorkingHours:  attendance.WorkingHours(checkIn, checkOut),
	}, nil
}

// Monthly implements attendance.AttendanceService. A zero month or year
// defaults to the current one in the organization's time zone, read from the
// same clock that classification uses.
func (a *AttendanceServiceImpl) Monthly(ctx context.Context, filter attendance.MonthlyFilter) (attendance.MonthlyResponse, error) {
	nowLocal := a.now().In(a.location)
	if filter.Month == 0 {
		filter.Month = int(nowLocal.Month())
	}
	if filter.Year == 0 {
		filter.Year = nowLocal.Year()
	}

	if err := filter.Validate(); err != nil {
		return attendance.MonthlyResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.MonthlyResponse{}, err
	}

	month := time.Month(filter.Month)
	first := time.Date(filter.Year, month, 1, 0, 0, 0, 0, a.location)
	last := first.AddDate(0, 1, -1)

	events, err := a.EventRepository.ListByEmployeeBetween(ctx, employeeID,
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return attendance.MonthlyResponse{}, fmt.Errorf("failed to list events for month: %w", err)
	}

	days := a.classifier.BuildMonth(filter.Year, month, events, a.now())
	summary := Summarize(days)

	responses := make([]attendance.DayResponse, 0, len(days))
	for _, d := range days {
		responses = append(responses, mapDayToResponse(d))
	}

	return attendance.MonthlyResponse{
		Month:       filter.Month,
		Year:        filter.Year,
		Days:        responses,
		PresentDays: summary.PresentDays,
		LateDays:    summary.LateDays,
		AbsentDays:  summary.AbsentDays,
	}, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.DayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 30
	}

	today := dateOnly(a.now(), a.location)
	end := today
	if filter.EndDate != "" {
		parsed, _ := time.ParseInLocation("2006-01-02", filter.EndDate, a.location)
		end = parsed
	}
	start := end.AddDate(0, 0, -(limit - 1))
	if filter.StartDate != "" {
		parsed, _ := time.ParseInLocation("2006-01-02", filter.StartDate, a.location)
		start = parsed
	}

	events, err := a.EventRepository.ListByEmployeeBetween(ctx, employeeID,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list events for history: %w", err)
	}

	byDate := groupByDate(events)

	// Newest day first, only days that have at least one event.
	responses := make([]attendance.DayResponse, 0, len(byDate))
	for date := end; !date.Before(start); date = date.AddDate(0, 0, -1) {
		pair, ok := byDate[date.Format("2006-01-02")]
		if !ok {
			continue
		}
		responses = append(responses, mapDayToResponse(attendance.Day{
			Date:         date,
			CheckIn:      pair.checkIn,
			CheckOut:     pair.checkOut,
			WorkingHours: attendance.WorkingHours(pair.checkIn, pair.checkOut),
			Status:       a.classifier.Classify(date, pair.checkIn, a.now()),
		}))
	}
	return responses, nil
}

func findEvent(events []attendance.Event, kind attendance.EventKind) *attendance.Event {
	for i := range events {
		if events[i].Kind == kind {
			return &events[i]
		}
	}
	return nil
}

func mapEventToResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:         ev.ID,
		EmployeeID: ev.EmployeeID,
		Kind:       string(ev.Kind),
		Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339),
		Date:       ev.Date,
		Latitude:   ev.Latitude,
		Longitude:  ev.Longitude,
		ZoneID:     ev.ZoneID,
	}
}

func mapEventPtr(ev *attendance.Event) *attendance.EventResponse {
	if ev == nil {
		return nil
	}
	resp := mapEventToResponse(*ev)
	return &resp
}

func mapDayToResponse(d attendance.Day) attendance.DayResponse {
	return attendance.DayResponse{
		Date:         d.Date.Format("2006-01-02"),
		CheckIn:      mapEventPtr(d.CheckIn),
		CheckOut:     mapEventPtr(d.CheckOut),
		WorkingHours: d.WorkingHours,
		Status:       string(d.Status),
	}
}
