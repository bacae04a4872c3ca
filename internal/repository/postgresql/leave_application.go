package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveApplicationRepository struct {
	db *database.DB
}

func NewLeaveApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &leaveApplicationRepository{db: db}
}

// Create implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) Create(ctx context.Context, application leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			id, employee_id, leave_type_id, start_date, end_date, days,
			reason, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING applied_at
	`

	err := q.QueryRow(ctx, query,
		application.ID, application.EmployeeID, application.LeaveTypeID,
		application.StartDate, application.EndDate, application.Days,
		application.Reason, application.Status,
	).Scan(&application.AppliedAt)

	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return application, nil
}

// GetByID implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.leave_type_id, a.start_date, a.end_date, a.days,
		       a.reason, a.status, a.applied_at, a.decided_at, a.decided_by, a.remarks,
		       t.name
		FROM leave_applications a
		JOIN leave_types t ON t.id = a.leave_type_id
		WHERE a.id = $1
	`

	var a leave.Application
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.LeaveTypeID, &a.StartDate, &a.EndDate, &a.Days,
		&a.Reason, &a.Status, &a.AppliedAt, &a.DecidedAt, &a.DecidedBy, &a.Remarks,
		&a.LeaveTypeName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrApplicationNotFound
		}
		return leave.Application{}, fmt.Errorf("failed to get leave application: %w", err)
	}

	return a, nil
}

// ListByEmployee implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) ListByEmployee(ctx context.Context, employeeID string, status *leave.ApplicationStatus) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.leave_type_id, a.start_date, a.end_date, a.days,
		       a.reason, a.status, a.applied_at, a.decided_at, a.decided_by, a.remarks,
		       t.name
		FROM leave_applications a
		JOIN leave_types t ON t.id = a.leave_type_id
		WHERE a.employee_id = $1
		  AND ($2::text IS NULL OR a.status = $2)
		ORDER BY a.applied_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	return scanApplications(rows)
}

// List implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) List(ctx context.Context, status *leave.ApplicationStatus, employeeID *string) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.leave_type_id, a.start_date, a.end_date, a.days,
		       a.reason, a.status, a.applied_at, a.decided_at, a.decided_by, a.remarks,
		       t.name
		FROM leave_applications a
		JOIN leave_types t ON t.id = a.leave_type_id
		WHERE ($1::text IS NULL OR a.status = $1)
		  AND ($2::text IS NULL OR a.employee_id = $2)
		ORDER BY a.applied_at DESC
	`

	rows, err := q.Query(ctx, query, status, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	return scanApplications(rows)
}

// HasOverlapping implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_applications
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	return exists, nil
}

// UpdateStatus implements leave.ApplicationRepository.
func (r *leaveApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to leave.ApplicationStatus, decidedBy *string, decidedAt *time.Time, remarks *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $3,
		    decided_by = $4,
		    decided_at = $5,
		    remarks = $6
		WHERE id = $1
		  AND status = $2
	`

	tag, err := q.Exec(ctx, query, id, from, to, decidedBy, decidedAt, remarks)
	if err != nil {
		return false, fmt.Errorf("failed to update leave application status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanApplications(rows pgx.Rows) ([]leave.Application, error) {
	var applications []leave.Application
	for rows.Next() {
		var a leave.Application
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.LeaveTypeID, &a.StartDate, &a.EndDate, &a.Days,
			&a.Reason, &a.Status, &a.AppliedAt, &a.DecidedAt, &a.DecidedBy, &a.Remarks,
			&a.LeaveTypeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}
