package leavebalance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	leavebalanceerrors "github.com/nirzaf/gohrms/internal/leavebalance/errors"
	"github.com/nirzaf/gohrms/internal/leavetype"
	leavetypeerrors "github.com/nirzaf/gohrms/internal/leavetype/errors"
	"github.com/nirzaf/gohrms/internal/shared/storage"
)

// TypeLookup is the slice of the leave type registry the ledger needs for
// seeding new balances. Satisfied by leavetype.Repository.
type TypeLookup interface {
	GetByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (BalanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	Reserve(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Commit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Release(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Accrue(ctx context.Context, req AccrueBalanceRequest) (BalanceResponse, error)
	Reconcile(ctx context.Context, req ReconcileBalanceRequest) (BalanceResponse, error)
}

type service struct {
	repo    Repository
	types   TypeLookup
	seeding singleflight.Group
	logger  *zap.Logger
}

func NewService(repo Repository, types TypeLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{repo: repo, types: types, logger: l}
}

func validateKey(employeeID, leaveTypeID string, year int) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return leavebalanceerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return leavebalanceerrors.ErrInvalidLeaveTypeID
	}
	if year < 2000 || year > 2200 {
		return leavebalanceerrors.ErrInvalidYear
	}
	return nil
}

func (s *service) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (BalanceResponse, error) {
	if err := validateKey(employeeID, leaveTypeID, year); err != nil {
		return BalanceResponse{}, err
	}
	b, err := s.repo.FindByKey(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leavebalanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidEmployeeID
	}
	balances, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

// Reserve debits remaining and credits pending in a single conditional
// update. A missing balance is seeded lazily from the leave type's default
// allocation; concurrent seeders for the same key are collapsed by
// singleflight in-process and by the unique index across processes.
func (s *service) Reserve(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	if err := validateKey(employeeID, leaveTypeID, year); err != nil {
		return err
	}
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDays
	}

	ok, err := s.repo.ReserveDays(ctx, employeeID, leaveTypeID, year, days)
	if err != nil {
		s.logger.Error("reserve days failed", zap.Error(err))
		return err
	}
	if ok {
		return nil
	}

	_, err = s.repo.FindByKey(ctx, employeeID, leaveTypeID, year)
	if err == nil {
		// Balance exists, so the guard itself rejected the update.
		return leavebalanceerrors.ErrInsufficientBalance
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.seedBalance(ctx, employeeID, leaveTypeID, year); err != nil {
		return err
	}

	ok, err = s.repo.ReserveDays(ctx, employeeID, leaveTypeID, year, days)
	if err != nil {
		return err
	}
	if !ok {
		return leavebalanceerrors.ErrInsufficientBalance
	}
	return nil
}

func (s *service) seedBalance(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	key := fmt.Sprintf("%s:%s:%d", employeeID, leaveTypeID, year)
	_, err, _ := s.seeding.Do(key, func() (any, error) {
		lt, err := s.types.GetByID(ctx, leaveTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, leavetypeerrors.ErrLeaveTypeNotFound
			}
			return nil, err
		}
		if !lt.IsActive {
			return nil, leavetypeerrors.ErrLeaveTypeInactive
		}

		now := time.Now().UTC()
		b := &LeaveBalance{
			ID:              uuid.New(),
			EmployeeID:      uuid.MustParse(employeeID),
			LeaveTypeID:     uuid.MustParse(leaveTypeID),
			Year:            year,
			Allocated:       lt.DefaultAllocation,
			Used:            decimal.Zero,
			Pending:         decimal.Zero,
			Remaining:       lt.DefaultAllocation,
			LastAccrualDate: now,
		}
		if err := s.repo.Insert(ctx, b); err != nil {
			// Another writer seeded the same key first; the record exists.
			if storage.IsUniqueViolation(err) {
				return nil, nil
			}
			return nil, err
		}

		s.logger.Info("seeded leave balance",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("year", year),
			zap.String("allocated", lt.DefaultAllocation.String()),
		)
		return nil, nil
	})
	return err
}

// Commit moves previously reserved days from pending to used on approval.
func (s *service) Commit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	if err := validateKey(employeeID, leaveTypeID, year); err != nil {
		return err
	}
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDays
	}

	ok, err := s.repo.CommitDays(ctx, employeeID, leaveTypeID, year, days)
	if err != nil {
		s.logger.Error("commit days failed", zap.Error(err))
		return err
	}
	if ok {
		return nil
	}
	return s.classifyGuardFailure(ctx, employeeID, leaveTypeID, year)
}

// Release returns reserved days to remaining on rejection or cancellation.
func (s *service) Release(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error {
	if err := validateKey(employeeID, leaveTypeID, year); err != nil {
		return err
	}
	if !days.IsPositive() {
		return leavebalanceerrors.ErrInvalidDays
	}

	ok, err := s.repo.ReleaseDays(ctx, employeeID, leaveTypeID, year, days)
	if err != nil {
		s.logger.Error("release days failed", zap.Error(err))
		return err
	}
	if ok {
		return nil
	}
	return s.classifyGuardFailure(ctx, employeeID, leaveTypeID, year)
}

func (s *service) classifyGuardFailure(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	_, err := s.repo.FindByKey(ctx, employeeID, leaveTypeID, year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavebalanceerrors.ErrBalanceNotFound
	}
	if err != nil {
		return err
	}
	return leavebalanceerrors.ErrPendingUnderflow
}

// Accrue is an administrative top-up of allocated and remaining. The amount
// is an input; no accrual schedule is computed here.
func (s *service) Accrue(ctx context.Context, req AccrueBalanceRequest) (BalanceResponse, error) {
	if err := validateKey(req.EmployeeID, req.LeaveTypeID, req.Year); err != nil {
		return BalanceResponse{}, err
	}
	days, err := decimal.NewFromString(req.Days)
	if err != nil || !days.IsPositive() {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidDays
	}

	ok, err := s.repo.AccrueDays(ctx, req.EmployeeID, req.LeaveTypeID, req.Year, days)
	if err != nil {
		return BalanceResponse{}, err
	}
	if !ok {
		return BalanceResponse{}, leavebalanceerrors.ErrBalanceNotFound
	}

	b, err := s.repo.FindByKey(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("accrued leave balance",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
		zap.String("days", days.String()),
	)
	return mapToResponse(*b), nil
}

// Reconcile is the administrative overwrite for corrections. The submitted
// components must already satisfy the accounting invariant. The write is
// last-wins: a reservation or settlement that lands between Reconcile's read
// and its overwrite is superseded by the submitted components. That is the
// intended semantics of a manual correction, so callers should quote the
// components from a fresh GetBalance read.
func (s *service) Reconcile(ctx context.Context, req ReconcileBalanceRequest) (BalanceResponse, error) {
	if err := validateKey(req.EmployeeID, req.LeaveTypeID, req.Year); err != nil {
		return BalanceResponse{}, err
	}

	components := make([]decimal.Decimal, 4)
	for i, raw := range []string{req.Allocated, req.Used, req.Pending, req.Remaining} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return BalanceResponse{}, leavebalanceerrors.ErrInvalidDays
		}
		components[i] = d
	}

	b, err := s.repo.FindByKey(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leavebalanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	b.Allocated = components[0]
	b.Used = components[1]
	b.Pending = components[2]
	b.Remaining = components[3]
	if !b.InvariantHolds() {
		return BalanceResponse{}, leavebalanceerrors.ErrInvariantViolated
	}

	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.Replace(ctx, b); err != nil {
		s.logger.Error("reconcile persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("reconciled leave balance",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)
	return mapToResponse(*b), nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:              b.ID.String(),
		EmployeeID:      b.EmployeeID.String(),
		LeaveTypeID:     b.LeaveTypeID.String(),
		Year:            b.Year,
		Allocated:       b.Allocated.String(),
		Used:            b.Used.String(),
		Pending:         b.Pending.String(),
		Remaining:       b.Remaining.String(),
		LastAccrualDate: b.LastAccrualDate.Format("2006-01-02"),
	}
}
