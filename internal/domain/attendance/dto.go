package attendance

import (
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ZoneID    string  `json:"zone_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if validator.IsEmpty(r.ZoneID) {
		errs = append(errs, validator.ValidationError{
			Field:   "zone_id",
			Message: "zone_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyFilter struct {
	Month int
	Year  int
}

func (f *MonthlyFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	StartDate string
	EndDate   string
	Limit     int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be formatted YYYY-MM-DD",
			})
		}
	}

	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be formatted YYYY-MM-DD",
			})
		}
	}

	if f.Limit < 0 || f.Limit > 366 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Kind       string  `json:"kind"`
	Timestamp  string  `json:"timestamp"`
	Date       string  `json:"date"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ZoneID     *string `json:"zone_id,omitempty"`
}

type TodayStatusResponse struct {
	HasCheckedIn  bool           `json:"has_checked_in"`
	HasCheckedOut bool           `json:"has_checked_out"`
	CheckIn       *EventResponse `json:"check_in,omitempty"`
	CheckOut      *EventResponse `json:"check_out,omitempty"`
	WorkingHours  float64        `json:"working_hours"`
}

type DayResponse struct {
	Date         string         `json:"date"`
	CheckIn      *EventResponse `json:"check_in,omitempty"`
	CheckOut     *EventResponse `json:"check_out,omitempty"`
	WorkingHours float64        `json:"working_hours"`
	Status       string         `json:"status"`
}

type MonthlyResponse struct {
	Month       int              `json:"month"`
	Year        int              `json:"year"`
	Days        []DayResponse    `json:"days"`
	PresentDays int              `json:"present_days"`
	LateDays    int              `json:"late_days"`
	AbsentDays  int              `json:"absent_days"`
}
