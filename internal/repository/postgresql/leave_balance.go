package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// leave_balances carries CHECK (balance_days >= 0) and
// CHECK (pending_days >= 0); the guarded UPDATEs below return zero rows
// instead of tripping the constraints.

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// GetByEmployee implements leave.BalanceRepository.
func (r *leaveBalanceRepository) GetByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.employee_id, b.leave_type_id, b.balance_days, b.pending_days, b.updated_at,
		       t.name
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1
		ORDER BY t.name ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(
			&b.EmployeeID, &b.LeaveTypeID, &b.BalanceDays, &b.PendingDays, &b.UpdatedAt,
			&b.LeaveTypeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, leave_type_id, balance_days, pending_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		  AND leave_type_id = $2
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&b.EmployeeID, &b.LeaveTypeID, &b.BalanceDays, &b.PendingDays, &b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get balance: %w", err)
	}

	return b, nil
}

// Reserve implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Reserve(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance_days = balance_days - $3,
		    pending_days = pending_days + $3,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND balance_days >= $3
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, days)
	if err != nil {
		return false, fmt.Errorf("failed to reserve balance: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Release implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Release(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance_days = balance_days + $3,
		    pending_days = pending_days - $3,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND pending_days >= $3
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, days)
	if err != nil {
		return false, fmt.Errorf("failed to release reservation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Commit implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Commit(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET pending_days = pending_days - $3,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND pending_days >= $3
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, days)
	if err != nil {
		return false, fmt.Errorf("failed to commit reservation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Credit implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Credit(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET balance_days = balance_days + $3,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type_id = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, days)
	if err != nil {
		return false, fmt.Errorf("failed to credit balance: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
