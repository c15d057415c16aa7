package leaverequest

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/shared/storage"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, l *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	TransitionStatus(ctx context.Context, l *LeaveRequest) (bool, error)
	SoftDelete(ctx context.Context, id string) error
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]LeaveRequest, error)
	FindSubmittedForEmployees(ctx context.Context, employeeIDs []string) ([]LeaveRequest, error)
}

type repository struct {
	store *storage.Store[LeaveRequest]
	db    *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{store: storage.NewStore[LeaveRequest](db), db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{store: r.store.WithTx(tx), db: tx}
}

func (r *repository) Insert(ctx context.Context, l *LeaveRequest) error {
	return r.store.Insert(ctx, l)
}

func (r *repository) GetByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return r.store.GetByID(ctx, id)
}

// TransitionStatus applies a terminal decision guarded on the row still
// being Submitted, so two concurrent deciders cannot both win: the loser's
// update matches zero rows. Same conditional-update shape as the ledger
// mutations.
func (r *repository) TransitionStatus(ctx context.Context, l *LeaveRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, StatusSubmitted).
		Updates(map[string]any{
			"status":           l.Status,
			"approver_id":      l.ApproverID,
			"approved_at":      l.ApprovedAt,
			"rejection_reason": l.RejectionReason,
			"updated_at":       l.UpdatedAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	return r.store.SoftDelete(ctx, id)
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return r.store.Find(ctx,
		storage.Where("employee_id = ?", employeeID),
		storage.OrderBy("start_date DESC"),
	)
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	return r.store.Find(ctx,
		storage.Where("status = ?", status),
		storage.OrderBy("start_date DESC"),
	)
}

// FindByDateRange keeps the literal containment bounds: requests whose
// start date is on or after start AND whose end date is on or before end.
func (r *repository) FindByDateRange(ctx context.Context, start, end time.Time) ([]LeaveRequest, error) {
	return r.store.Find(ctx,
		storage.Where("start_date >= ? AND end_date <= ?", start, end),
		storage.OrderBy("start_date DESC"),
	)
}

func (r *repository) FindSubmittedForEmployees(ctx context.Context, employeeIDs []string) ([]LeaveRequest, error) {
	if len(employeeIDs) == 0 {
		return []LeaveRequest{}, nil
	}
	return r.store.Find(ctx,
		storage.Where("employee_id IN ?", employeeIDs),
		storage.Where("status = ?", StatusSubmitted),
	)
}
