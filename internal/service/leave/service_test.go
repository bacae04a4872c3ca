package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (r *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *fakeLeaveTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range r.types {
		out = append(out, lt)
	}
	return out, nil
}

// fakeBalanceRepo mimics leave_balances with the guarded-UPDATE semantics of
// the real mutators: each mutation is atomic and reports false instead of
// driving a balance negative.
type fakeBalanceRepo struct {
	mu       sync.Mutex
	balances map[string]*leave.Balance
}

func balanceKey(employeeID, leaveTypeID string) string {
	return employeeID + "/" + leaveTypeID
}

func (r *fakeBalanceRepo) GetByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Balance
	for _, b := range r.balances {
		if b.EmployeeID == employeeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBalanceRepo) Get(ctx context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return *b, nil
}

func (r *fakeBalanceRepo) Reserve(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok || b.BalanceDays < days {
		return false, nil
	}
	b.BalanceDays -= days
	b.PendingDays += days
	return true, nil
}

func (r *fakeBalanceRepo) Release(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok || b.PendingDays < days {
		return false, nil
	}
	b.PendingDays -= days
	b.BalanceDays += days
	return true, nil
}

func (r *fakeBalanceRepo) Commit(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok || b.PendingDays < days {
		return false, nil
	}
	b.PendingDays -= days
	return true, nil
}

func (r *fakeBalanceRepo) Credit(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok {
		return false, nil
	}
	b.BalanceDays += days
	return true, nil
}

// fakeApplicationRepo mimics leave_applications, including the compare-and-set
// behavior of the status transition UPDATE that makes concurrent decisions
// pick a single winner.
type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]leave.Application
}

func (r *fakeApplicationRepo) Create(ctx context.Context, application leave.Application) (leave.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[application.ID] = application
	return application, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (leave.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return leave.Application{}, leave.ErrApplicationNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) ListByEmployee(ctx context.Context, employeeID string, status *leave.ApplicationStatus) ([]leave.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Application
	for _, app := range r.apps {
		if app.EmployeeID != employeeID {
			continue
		}
		if status != nil && app.Status != *status {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (r *fakeApplicationRepo) List(ctx context.Context, status *leave.ApplicationStatus, employeeID *string) ([]leave.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.Application
	for _, app := range r.apps {
		if status != nil && app.Status != *status {
			continue
		}
		if employeeID != nil && app.EmployeeID != *employeeID {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (r *fakeApplicationRepo) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.EmployeeID != employeeID {
			continue
		}
		if app.Status != leave.StatusPending && app.Status != leave.StatusApproved {
			continue
		}
		if !app.StartDate.After(end) && !app.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, from, to leave.ApplicationStatus, decidedBy *string, decidedAt *time.Time, remarks *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok || app.Status != from {
		return false, nil
	}
	app.Status = to
	app.DecidedBy = decidedBy
	app.DecidedAt = decidedAt
	app.Remarks = remarks
	r.apps[id] = app
	return true, nil
}

func authedContext(t *testing.T, employeeID, role string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

const annualLeaveID = "0198c1a0-0000-7000-8000-0000000000aa"

type leaveFixture struct {
	svc      *LeaveServiceImpl
	balances *fakeBalanceRepo
	apps     *fakeApplicationRepo
}

func newLeaveFixture(balanceDays float64) leaveFixture {
	typeRepo := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		annualLeaveID: {ID: annualLeaveID, Name: "Annual Leave", IsPaid: true},
	}}
	balances := &fakeBalanceRepo{balances: map[string]*leave.Balance{
		balanceKey("emp-1", annualLeaveID): {
			EmployeeID:  "emp-1",
			LeaveTypeID: annualLeaveID,
			BalanceDays: balanceDays,
		},
	}}
	apps := &fakeApplicationRepo{apps: map[string]leave.Application{}}

	svc := NewLeaveService(fakeTxRunner{}, typeRepo, balances, apps, time.UTC).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }

	return leaveFixture{svc: svc, balances: balances, apps: apps}
}

func (f leaveFixture) balance(t *testing.T) leave.Balance {
	t.Helper()
	b, err := f.balances.Get(context.Background(), "emp-1", annualLeaveID)
	require.NoError(t, err)
	return b
}

func TestLeaveService_Apply_ReservesBalance(t *testing.T) {
	f := newLeaveFixture(10)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	// Mon 2025-06-09 through Wed 2025-06-11: 3 working days.
	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	require.NotNil(t, resp.LeaveTypeName)
	assert.Equal(t, "Annual Leave", *resp.LeaveTypeName)

	b := f.balance(t)
	assert.Equal(t, 7.0, b.BalanceDays)
	assert.Equal(t, 3.0, b.PendingDays)
}

func TestLeaveService_Apply_InsufficientBalance(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	// Mon through Fri: 5 working days against a balance of 3.
	_, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-13",
	})

	var insufficient *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3.0, insufficient.AvailableDays)
	assert.Equal(t, 5, insufficient.RequestedDays)

	b := f.balance(t)
	assert.Equal(t, 3.0, b.BalanceDays)
	assert.Equal(t, 0.0, b.PendingDays)
	assert.Empty(t, f.apps.apps)
}

func TestLeaveService_Apply_WeekendOnly(t *testing.T) {
	f := newLeaveFixture(10)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	_, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-14",
		EndDate:     "2025-06-15",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_Apply_StartDateInPast(t *testing.T) {
	f := newLeaveFixture(10)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	_, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-05-30",
		EndDate:     "2025-06-02",
	})

	assert.ErrorIs(t, err, leave.ErrStartDateInPast)
}

func TestLeaveService_Apply_UnknownLeaveType(t *testing.T) {
	f := newLeaveFixture(10)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	_, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: "0198c1a0-0000-7000-8000-00000000dead",
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})

	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestLeaveService_Apply_Overlapping(t *testing.T) {
	f := newLeaveFixture(10)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	_, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-11",
		EndDate:     "2025-06-12",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	b := f.balance(t)
	assert.Equal(t, 7.0, b.BalanceDays)
	assert.Equal(t, 3.0, b.PendingDays)
}

func TestLeaveService_Approve_CommitsReservation(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	hrCtx := authedContext(t, "hr-1", "HR")
	decided, err := f.svc.Approve(hrCtx, leave.DecisionRequest{ID: resp.ID})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "hr-1", *decided.DecidedBy)

	b := f.balance(t)
	assert.Equal(t, 0.0, b.BalanceDays)
	assert.Equal(t, 0.0, b.PendingDays)
}

func TestLeaveService_Reject_ReleasesReservation(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	remarks := "project deadline"
	hrCtx := authedContext(t, "hr-1", "HR")
	decided, err := f.svc.Reject(hrCtx, leave.DecisionRequest{ID: resp.ID, Remarks: &remarks})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), decided.Status)

	b := f.balance(t)
	assert.Equal(t, 3.0, b.BalanceDays)
	assert.Equal(t, 0.0, b.PendingDays)
}

func TestLeaveService_Decide_AlreadyProcessed(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	hrCtx := authedContext(t, "hr-1", "HR")
	_, err = f.svc.Approve(hrCtx, leave.DecisionRequest{ID: resp.ID})
	require.NoError(t, err)

	_, err = f.svc.Reject(hrCtx, leave.DecisionRequest{ID: resp.ID})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	// Balance untouched by the losing decision.
	b := f.balance(t)
	assert.Equal(t, 0.0, b.BalanceDays)
	assert.Equal(t, 0.0, b.PendingDays)
}

func TestLeaveService_Cancel_PendingReleases(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)

	b := f.balance(t)
	assert.Equal(t, 3.0, b.BalanceDays)
	assert.Equal(t, 0.0, b.PendingDays)
}

func TestLeaveService_Cancel_ApprovedCredits(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	hrCtx := authedContext(t, "hr-1", "HR")
	_, err = f.svc.Approve(hrCtx, leave.DecisionRequest{ID: resp.ID})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)

	b := f.balance(t)
	assert.Equal(t, 3.0, b.BalanceDays)
	assert.Equal(t, 0.0, b.PendingDays)
}

func TestLeaveService_Cancel_OtherEmployee(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	otherCtx := authedContext(t, "emp-2", "EMPLOYEE")
	_, err = f.svc.Cancel(otherCtx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrApplicationNotFound)
}

func TestLeaveService_Cancel_Rejected(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	hrCtx := authedContext(t, "hr-1", "HR")
	_, err = f.svc.Reject(hrCtx, leave.DecisionRequest{ID: resp.ID})
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrNotCancelable)
}

func TestLeaveService_ApproveCancelRace_LeavesBalanceConsistent(t *testing.T) {
	f := newLeaveFixture(3)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")
	hrCtx := authedContext(t, "hr-1", "HR")

	resp, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var approveErr, cancelErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, approveErr = f.svc.Approve(hrCtx, leave.DecisionRequest{ID: resp.ID})
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = f.svc.Cancel(ctx, resp.ID)
	}()
	wg.Wait()

	// Only one caller takes the application out of pending. The other either
	// loses with a conflict error, or, when the approval lands first, cancels
	// the now-approved application, which is an ordinary follow-up.
	app, err := f.apps.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	b := f.balance(t)
	assert.Equal(t, 0.0, b.PendingDays)

	switch {
	case cancelErr == nil:
		assert.Equal(t, leave.StatusCancelled, app.Status)
		assert.Equal(t, 3.0, b.BalanceDays)
		if approveErr != nil {
			assert.ErrorIs(t, approveErr, leave.ErrAlreadyProcessed)
		}
	case approveErr == nil:
		assert.ErrorIs(t, cancelErr, leave.ErrNotCancelable)
		assert.Equal(t, leave.StatusApproved, app.Status)
		assert.Equal(t, 0.0, b.BalanceDays)
	default:
		t.Fatalf("both decisions failed: approve=%v cancel=%v", approveErr, cancelErr)
	}
}

func TestLeaveService_MyApplications_StatusFilter(t *testing.T) {
	f := newLeaveFixture(10)
	ctx := authedContext(t, "emp-1", "EMPLOYEE")

	first, err := f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-09",
		EndDate:     "2025-06-09",
	})
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, leave.ApplyRequest{
		LeaveTypeID: annualLeaveID,
		StartDate:   "2025-06-11",
		EndDate:     "2025-06-11",
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	pending, err := f.svc.MyApplications(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := f.svc.MyApplications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.MyApplications(ctx, "bogus")
	assert.Error(t, err)
}
