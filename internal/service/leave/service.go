package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// Reservation policy: Apply moves the requested days from balance_days to
// pending_days in the same transaction that creates the application, so
// overlapping pending requests cannot overcommit a balance. Reject and
// cancel-of-pending release the reservation; Approve commits it; cancel of
// an approved request credits the days back.
type LeaveServiceImpl struct {
	tx database.TxRunner
	leave.LeaveTypeRepository
	leave.BalanceRepository
	leave.ApplicationRepository

	location *time.Location
	now      func() time.Time
}

func NewLeaveService(
	tx database.TxRunner,
	leaveTypeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	applicationRepo leave.ApplicationRepository,
	location *time.Location,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                    tx,
		LeaveTypeRepository:   leaveTypeRepo,
		BalanceRepository:     balanceRepo,
		ApplicationRepository: applicationRepo,
		location:              location,
		now:                   time.Now,
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

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, s.location)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, s.location)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	nowLocal := s.now().In(s.location)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, s.location)
	if startDate.Before(today) {
		return leave.ApplicationResponse{}, leave.ErrStartDateInPast
	}

	days := WorkingDays(startDate, endDate)
	if days == 0 {
		return leave.ApplicationResponse{}, leave.ErrInvalidDateRange
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return leave.ApplicationResponse{}, leave.ErrLeaveTypeNotFound
		}
		return leave.ApplicationResponse{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("failed to generate application id: %w", err)
	}

	application := leave.Application{
		ID:          id.String(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        days,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
		AppliedAt:   s.now().UTC(),
	}

	var created leave.Application
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		// Read-then-insert: two overlapping applies racing each other can
		// both pass this check. The reservation guard below still caps the
		// total days an employee can hold.
		hasOverlap, err := s.ApplicationRepository.HasOverlapping(ctx, employeeID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping applications: %w", err)
		}
		if hasOverlap {
			return leave.ErrOverlappingLeave
		}

		balance, err := s.BalanceRepository.Get(ctx, employeeID, leaveType.ID)
		if err != nil {
			if errors.Is(err, leave.ErrBalanceNotFound) {
				return leave.ErrBalanceNotFound
			}
			return fmt.Errorf("failed to get balance: %w", err)
		}

		reserved, err := s.BalanceRepository.Reserve(ctx, employeeID, leaveType.ID, float64(days))
		if err != nil {
			return fmt.Errorf("failed to reserve balance: %w", err)
		}
		if !reserved {
			return &leave.InsufficientBalanceError{
				AvailableDays: balance.BalanceDays,
				RequestedDays: days,
			}
		}

		created, err = s.ApplicationRepository.Create(ctx, application)
		if err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	return mapApplicationToResponse(created), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecisionRequest) (leave.ApplicationResponse, error) {
	return s.decide(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecisionRequest) (leave.ApplicationResponse, error) {
	return s.decide(ctx, req, leave.StatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecisionRequest, to leave.ApplicationStatus) (leave.ApplicationResponse, error) {
	decidedBy, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	var application leave.Application
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		application, err = s.ApplicationRepository.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, leave.ErrApplicationNotFound) {
				return leave.ErrApplicationNotFound
			}
			return fmt.Errorf("failed to get application: %w", err)
		}

		decidedAt := s.now().UTC()
		updated, err := s.ApplicationRepository.UpdateStatus(ctx,
			application.ID, leave.StatusPending, to, &decidedBy, &decidedAt, req.Remarks)
		if err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}
		if !updated {
			return leave.ErrAlreadyProcessed
		}

		days := float64(application.Days)
		switch to {
		case leave.StatusApproved:
			ok, err := s.BalanceRepository.Commit(ctx, application.EmployeeID, application.LeaveTypeID, days)
			if err != nil {
				return fmt.Errorf("failed to commit reservation: %w", err)
			}
			if !ok {
				return fmt.Errorf("reservation missing for application %s", application.ID)
			}
		case leave.StatusRejected:
			ok, err := s.BalanceRepository.Release(ctx, application.EmployeeID, application.LeaveTypeID, days)
			if err != nil {
				return fmt.Errorf("failed to release reservation: %w", err)
			}
			if !ok {
				return fmt.Errorf("reservation missing for application %s", application.ID)
			}
		}

		application.Status = to
		application.DecidedAt = &decidedAt
		application.DecidedBy = &decidedBy
		application.Remarks = req.Remarks
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	return mapApplicationToResponse(application), nil
}

// Cancel implements leave.LeaveService. Employees may cancel their own
// pending or approved applications; cancelling an approved one restores the
// debited days.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, id string) (leave.ApplicationResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	var application leave.Application
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		application, err = s.ApplicationRepository.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, leave.ErrApplicationNotFound) {
				return leave.ErrApplicationNotFound
			}
			return fmt.Errorf("failed to get application: %w", err)
		}

		// Employees only see their own applications.
		if application.EmployeeID != employeeID {
			return leave.ErrApplicationNotFound
		}

		from := application.Status
		if from != leave.StatusPending && from != leave.StatusApproved {
			return leave.ErrNotCancelable
		}

		updated, err := s.ApplicationRepository.UpdateStatus(ctx,
			application.ID, from, leave.StatusCancelled, nil, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}
		if !updated {
			// Lost a race with a concurrent decision or cancellation.
			return leave.ErrNotCancelable
		}

		days := float64(application.Days)
		switch from {
		case leave.StatusPending:
			ok, err := s.BalanceRepository.Release(ctx, application.EmployeeID, application.LeaveTypeID, days)
			if err != nil {
				return fmt.Errorf("failed to release reservation: %w", err)
			}
			if !ok {
				return fmt.Errorf("reservation missing for application %s", application.ID)
			}
		case leave.StatusApproved:
			ok, err := s.BalanceRepository.Credit(ctx, application.EmployeeID, application.LeaveTypeID, days)
			if err != nil {
				return fmt.Errorf("failed to credit balance: %w", err)
			}
			if !ok {
				return fmt.Errorf("balance missing for application %s", application.ID)
			}
		}

		application.Status = leave.StatusCancelled
		return nil
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	return mapApplicationToResponse(application), nil
}

// Types implements leave.LeaveService.
func (s *LeaveServiceImpl) Types(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, leave.LeaveTypeResponse{
			ID:         lt.ID,
			Name:       lt.Name,
			MaxPerYear: lt.MaxPerYear,
			IsPaid:     lt.IsPaid,
		})
	}
	return responses, nil
}

// Balances implements leave.LeaveService.
func (s *LeaveServiceImpl) Balances(ctx context.Context) ([]leave.BalanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := s.BalanceRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.BalanceResponse{
			EmployeeID:    b.EmployeeID,
			LeaveTypeID:   b.LeaveTypeID,
			LeaveTypeName: b.LeaveTypeName,
			BalanceDays:   b.BalanceDays,
			PendingDays:   b.PendingDays,
		})
	}
	return responses, nil
}

// MyApplications implements leave.LeaveService.
func (s *LeaveServiceImpl) MyApplications(ctx context.Context, status string) ([]leave.ApplicationResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	applications, err := s.ApplicationRepository.ListByEmployee(ctx, employeeID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return mapApplications(applications), nil
}

// Applications implements leave.LeaveService.
func (s *LeaveServiceImpl) Applications(ctx context.Context, status string, employeeID string) ([]leave.ApplicationResponse, error) {
	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}

	var employeeFilter *string
	if employeeID != "" {
		employeeFilter = &employeeID
	}

	applications, err := s.ApplicationRepository.List(ctx, statusFilter, employeeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return mapApplications(applications), nil
}

// PendingApplications implements leave.LeaveService.
func (s *LeaveServiceImpl) PendingApplications(ctx context.Context) ([]leave.ApplicationResponse, error) {
	pending := leave.StatusPending
	applications, err := s.ApplicationRepository.List(ctx, &pending, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending applications: %w", err)
	}

	return mapApplications(applications), nil
}

func parseStatusFilter(status string) (*leave.ApplicationStatus, error) {
	if status == "" {
		return nil, nil
	}
	if !validator.IsInSlice(status, []string{
		string(leave.StatusPending),
		string(leave.StatusApproved),
		string(leave.StatusRejected),
		string(leave.StatusCancelled),
	}) {
		return nil, validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, cancelled",
		}}
	}
	s := leave.ApplicationStatus(status)
	return &s, nil
}

func mapApplications(applications []leave.Application) []leave.ApplicationResponse {
	responses := make([]leave.ApplicationResponse, 0, len(applications))
	for _, app := range applications {
		responses = append(responses, mapApplicationToResponse(app))
	}
	return responses
}

func mapApplicationToResponse(app leave.Application) leave.ApplicationResponse {
	var decidedAt *string
	if app.DecidedAt != nil {
		formatted := app.DecidedAt.UTC().Format(time.RFC3339)
		decidedAt = &formatted
	}

	return leave.ApplicationResponse{
		ID:            app.ID,
		EmployeeID:    app.EmployeeID,
		LeaveTypeID:   app.LeaveTypeID,
		LeaveTypeName: app.LeaveTypeName,
		StartDate:     app.StartDate.Format("2006-01-02"),
		EndDate:       app.EndDate.Format("2006-01-02"),
		Days:          app.Days,
		Reason:        app.Reason,
		Status:        string(app.Status),
		AppliedAt:     app.AppliedAt.UTC().Format(time.RFC3339),
		DecidedAt:     decidedAt,
		DecidedBy:     app.DecidedBy,
		Remarks:       app.Remarks,
	}
}
