package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// attendance_events carries a unique index on (employee_id, date, kind);
// that index is what makes the one-check-in/one-check-out-per-day rule hold
// under concurrent requests.

type attendanceEventRepository struct {
	db *database.DB
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}

// Append implements attendance.EventRepository.
func (r *attendanceEventRepository) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, employee_id, kind, timestamp, date, latitude, longitude, zone_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		string(event.Kind),
		event.Timestamp,
		event.Date,
		event.Latitude,
		event.Longitude,
		event.ZoneID,
	).Scan(&event.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Event{}, attendance.ErrDuplicateEvent
		}
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return event, nil
}

// GetByEmployeeAndDate implements attendance.EventRepository.
func (r *attendanceEventRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, timestamp, date, latitude, longitude, zone_id, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND date = $2
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get events by date: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByEmployeeBetween implements attendance.EventRepository.
func (r *attendanceEventRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, timestamp, date, latitude, longitude, zone_id, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		var kind string
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &kind, &ev.Timestamp, &ev.Date,
			&ev.Latitude, &ev.Longitude, &ev.ZoneID, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		ev.Kind = attendance.EventKind(kind)
		events = append(events, ev)
	}
	return events, rows.Err()
}
