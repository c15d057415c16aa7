package leavebalance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/shared/storage"
)

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	FindByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	Insert(ctx context.Context, b *LeaveBalance) error
	Replace(ctx context.Context, b *LeaveBalance) error

	// The three ledger mutations are single conditional UPDATE statements.
	// Each reports false when the guard did not match, leaving the row
	// byte-for-byte unchanged.
	ReserveDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error)
	CommitDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error)
	ReleaseDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error)
	AccrueDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error)
}

type repository struct {
	store *storage.Store[LeaveBalance]
	db    *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{store: storage.NewStore[LeaveBalance](db), db: db}
}

func byKey(employeeID, leaveTypeID string, year int) storage.Scope {
	return storage.Where(
		"employee_id = ? AND leave_type_id = ? AND year = ?",
		employeeID, leaveTypeID, year,
	)
}

func (r *repository) FindByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	return r.store.First(ctx, byKey(employeeID, leaveTypeID, year))
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	return r.store.Find(ctx,
		storage.Where("employee_id = ?", employeeID),
		storage.OrderBy("year DESC"),
	)
}

func (r *repository) Insert(ctx context.Context, b *LeaveBalance) error {
	return r.store.Insert(ctx, b)
}

func (r *repository) Replace(ctx context.Context, b *LeaveBalance) error {
	return r.store.Replace(ctx, b)
}

// ReserveDays debits remaining and credits pending, guarded by
// remaining >= days so concurrent submissions cannot jointly overdraw.
func (r *repository) ReserveDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Scopes(byKey(employeeID, leaveTypeID, year)).
		Where("remaining >= ?", days).
		Updates(map[string]any{
			"pending":    gorm.Expr("pending + ?", days),
			"remaining":  gorm.Expr("remaining - ?", days),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected > 0, res.Error
}

// CommitDays moves days from pending to used. Remaining is untouched; it was
// already debited at reservation time.
func (r *repository) CommitDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Scopes(byKey(employeeID, leaveTypeID, year)).
		Where("pending >= ?", days).
		Updates(map[string]any{
			"pending":    gorm.Expr("pending - ?", days),
			"used":       gorm.Expr("used + ?", days),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected > 0, res.Error
}

// ReleaseDays returns reserved days to remaining.
func (r *repository) ReleaseDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Scopes(byKey(employeeID, leaveTypeID, year)).
		Where("pending >= ?", days).
		Updates(map[string]any{
			"pending":    gorm.Expr("pending - ?", days),
			"remaining":  gorm.Expr("remaining + ?", days),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected > 0, res.Error
}

// AccrueDays tops up allocated and remaining together and stamps the
// accrual date.
func (r *repository) AccrueDays(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Scopes(byKey(employeeID, leaveTypeID, year)).
		Updates(map[string]any{
			"allocated":         gorm.Expr("allocated + ?", days),
			"remaining":         gorm.Expr("remaining + ?", days),
			"last_accrual_date": now,
			"updated_at":        now,
		})
	return res.RowsAffected > 0, res.Error
}
