package leavetype

import (
	"context"

	"github.com/nirzaf/gohrms/internal/shared/storage"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, lt *LeaveType) error
	GetByID(ctx context.Context, id string) (*LeaveType, error)
	GetByName(ctx context.Context, name string) (*LeaveType, error)
	FindActive(ctx context.Context) ([]LeaveType, error)
	Replace(ctx context.Context, lt *LeaveType) error
}

type repository struct {
	store *storage.Store[LeaveType]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{store: storage.NewStore[LeaveType](db)}
}

func (r *repository) Insert(ctx context.Context, lt *LeaveType) error {
	return r.store.Insert(ctx, lt)
}

func (r *repository) GetByID(ctx context.Context, id string) (*LeaveType, error) {
	return r.store.GetByID(ctx, id)
}

func (r *repository) GetByName(ctx context.Context, name string) (*LeaveType, error) {
	return r.store.First(ctx, storage.Where("name = ?", name))
}

func (r *repository) FindActive(ctx context.Context) ([]LeaveType, error) {
	return r.store.Find(ctx,
		storage.Where("is_active = ?", true),
		storage.OrderBy("name ASC"),
	)
}

func (r *repository) Replace(ctx context.Context, lt *LeaveType) error {
	return r.store.Replace(ctx, lt)
}
