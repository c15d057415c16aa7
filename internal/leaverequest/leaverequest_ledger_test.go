package leaverequest_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/leavebalance"
	leavebalanceerrors "github.com/nirzaf/gohrms/internal/leavebalance/errors"
	"github.com/nirzaf/gohrms/internal/leaverequest"
	"github.com/nirzaf/gohrms/internal/leavetype"
)

// memoryBalanceRepository backs the real balance service with a single
// in-memory row, mirroring the guard semantics of the SQL conditional
// updates so the workflow can be exercised against real ledger arithmetic.
type memoryBalanceRepository struct {
	mu  sync.Mutex
	row leavebalance.LeaveBalance
}

func (m *memoryBalanceRepository) matches(employeeID, leaveTypeID string, year int) bool {
	return m.row.EmployeeID.String() == employeeID &&
		m.row.LeaveTypeID.String() == leaveTypeID &&
		m.row.Year == year
}

func (m *memoryBalanceRepository) FindByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.matches(employeeID, leaveTypeID, year) {
		return nil, gorm.ErrRecordNotFound
	}
	row := m.row
	return &row, nil
}

func (m *memoryBalanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]leavebalance.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row.EmployeeID.String() != employeeID {
		return nil, nil
	}
	return []leavebalance.LeaveBalance{m.row}, nil
}

func (m *memoryBalanceRepository) Insert(ctx context.Context, b *leavebalance.LeaveBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.row = *b
	return nil
}

func (m *memoryBalanceRepository) Replace(ctx context.Context, b *leavebalance.LeaveBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.row = *b
	return nil
}

func (m *memoryBalanceRepository) ReserveDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.matches(employeeID, leaveTypeID, year) || m.row.Remaining.LessThan(days) {
		return false, nil
	}
	m.row.Remaining = m.row.Remaining.Sub(days)
	m.row.Pending = m.row.Pending.Add(days)
	return true, nil
}

func (m *memoryBalanceRepository) CommitDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.matches(employeeID, leaveTypeID, year) || m.row.Pending.LessThan(days) {
		return false, nil
	}
	m.row.Pending = m.row.Pending.Sub(days)
	m.row.Used = m.row.Used.Add(days)
	return true, nil
}

func (m *memoryBalanceRepository) ReleaseDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.matches(employeeID, leaveTypeID, year) || m.row.Pending.LessThan(days) {
		return false, nil
	}
	m.row.Pending = m.row.Pending.Sub(days)
	m.row.Remaining = m.row.Remaining.Add(days)
	return true, nil
}

func (m *memoryBalanceRepository) AccrueDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.matches(employeeID, leaveTypeID, year) {
		return false, nil
	}
	m.row.Allocated = m.row.Allocated.Add(days)
	m.row.Remaining = m.row.Remaining.Add(days)
	return true, nil
}

func (m *memoryBalanceRepository) assertComponents(t *testing.T, allocated, used, pending, remaining string) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.True(t, m.row.Allocated.Equal(days(allocated)), "allocated: want %s, got %s", allocated, m.row.Allocated)
	assert.True(t, m.row.Used.Equal(days(used)), "used: want %s, got %s", used, m.row.Used)
	assert.True(t, m.row.Pending.Equal(days(pending)), "pending: want %s, got %s", pending, m.row.Pending)
	assert.True(t, m.row.Remaining.Equal(days(remaining)), "remaining: want %s, got %s", remaining, m.row.Remaining)
}

// emptyTypeRegistry never resolves a type; the tests below always start from
// an existing balance row, so the seeding path must stay untaken.
type emptyTypeRegistry struct{}

func (emptyTypeRegistry) GetByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}

type workflowLedgerFixture struct {
	deps    *leaveRequestServiceDeps
	service leaverequest.Service
	balance *memoryBalanceRepository
	stored  *leaverequest.LeaveRequest
}

// setupWorkflowLedgerTest pairs the real request service with the real
// balance service over an in-memory row holding allocated 20, used 5,
// pending 0, remaining 15.
func setupWorkflowLedgerTest(t *testing.T, employeeID, leaveTypeID string) *workflowLedgerFixture {
	t.Helper()

	deps := setupLeaveRequestServiceTest(t)
	t.Cleanup(func() { deps.db.Close() })

	balance := &memoryBalanceRepository{
		row: leavebalance.LeaveBalance{
			ID:          uuid.New(),
			EmployeeID:  uuid.MustParse(employeeID),
			LeaveTypeID: uuid.MustParse(leaveTypeID),
			Year:        2026,
			Allocated:   days("20"),
			Used:        days("5"),
			Pending:     days("0"),
			Remaining:   days("15"),
		},
	}
	ledger := leavebalance.NewService(balance, emptyTypeRegistry{})

	fixture := &workflowLedgerFixture{deps: deps, balance: balance}
	fixture.service = leaverequest.NewService(deps.gorm, deps.repo, ledger, deps.dir, deps.outbox)

	deps.repo.insertFn = func(ctx context.Context, l *leaverequest.LeaveRequest) error {
		fixture.stored = l
		return nil
	}
	deps.repo.getByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
		if fixture.stored == nil || fixture.stored.ID.String() != id {
			return nil, gorm.ErrRecordNotFound
		}
		snapshot := *fixture.stored
		return &snapshot, nil
	}
	deps.repo.transitionStatusFn = func(ctx context.Context, l *leaverequest.LeaveRequest) (bool, error) {
		if fixture.stored == nil || fixture.stored.Status != leaverequest.StatusSubmitted {
			return false, nil
		}
		fixture.stored = l
		return true, nil
	}
	return fixture
}

func TestLeaveRequestWorkflow_LedgerAccounting(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()
	approverID := uuid.New().String()

	submit := leaverequest.SubmitLeaveRequest{
		EmployeeID:     employeeID,
		LeaveTypeID:    leaveTypeID,
		StartDate:      "2026-03-02",
		EndDate:        "2026-03-13",
		DurationInDays: "10",
		Reason:         "sabbatical block",
	}

	t.Run("submit then approve settles the reservation into used", func(t *testing.T) {
		f := setupWorkflowLedgerTest(t, employeeID, leaveTypeID)

		expectTx(t, f.deps.sqlMock, true)
		resp, err := f.service.Submit(ctx, submit)
		assert.NoError(t, err)
		f.balance.assertComponents(t, "20", "5", "10", "5")

		expectTx(t, f.deps.sqlMock, true)
		decided, err := f.service.Approve(ctx, approverID, resp.ID)
		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, decided.Status)
		f.balance.assertComponents(t, "20", "15", "0", "5")
		assert.NoError(t, f.deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("submit then reject returns the reservation to remaining", func(t *testing.T) {
		f := setupWorkflowLedgerTest(t, employeeID, leaveTypeID)

		expectTx(t, f.deps.sqlMock, true)
		resp, err := f.service.Submit(ctx, submit)
		assert.NoError(t, err)
		f.balance.assertComponents(t, "20", "5", "10", "5")

		expectTx(t, f.deps.sqlMock, true)
		decided, err := f.service.Reject(ctx, approverID, resp.ID, "project deadline")
		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, decided.Status)
		if assert.NotNil(t, decided.RejectionReason) {
			assert.Equal(t, "project deadline", *decided.RejectionReason)
		}
		f.balance.assertComponents(t, "20", "5", "0", "15")
		assert.NoError(t, f.deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("submit beyond remaining is rejected by the guard", func(t *testing.T) {
		f := setupWorkflowLedgerTest(t, employeeID, leaveTypeID)

		over := submit
		over.DurationInDays = "16"
		_, err := f.service.Submit(ctx, over)

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)
		assert.Nil(t, f.stored)
		f.balance.assertComponents(t, "20", "5", "0", "15")
	})
}
