package directory

import (
	"context"

	"github.com/nirzaf/gohrms/internal/shared/storage"
	"gorm.io/gorm"
)

// Repository is the read-only view of the employee directory. Soft-deleted
// employees are filtered out of every lookup by the DeletedAt column.
//
//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	FindByDepartment(ctx context.Context, department string) ([]Employee, error)
	FindByManager(ctx context.Context, managerID string) ([]Employee, error)
}

type repository struct {
	store *storage.Store[Employee]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{store: storage.NewStore[Employee](db)}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Employee, error) {
	return r.store.GetByID(ctx, id)
}

func (r *repository) FindByDepartment(ctx context.Context, department string) ([]Employee, error) {
	return r.store.Find(ctx,
		storage.Where("department = ?", department),
		storage.OrderBy("full_name ASC"),
	)
}

func (r *repository) FindByManager(ctx context.Context, managerID string) ([]Employee, error) {
	return r.store.Find(ctx,
		storage.Where("reports_to = ?", managerID),
		storage.OrderBy("full_name ASC"),
	)
}
