package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/directory"
	directoryerrors "github.com/nirzaf/gohrms/internal/directory/errors"
)

type fakeEmployeeRepository struct {
	getByIDFn          func(ctx context.Context, id string) (*directory.Employee, error)
	findByDepartmentFn func(ctx context.Context, department string) ([]directory.Employee, error)
	findByManagerFn    func(ctx context.Context, managerID string) ([]directory.Employee, error)
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, id string) (*directory.Employee, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByDepartment(ctx context.Context, department string) ([]directory.Employee, error) {
	if f.findByDepartmentFn != nil {
		return f.findByDepartmentFn(ctx, department)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByManager(ctx context.Context, managerID string) ([]directory.Employee, error) {
	if f.findByManagerFn != nil {
		return f.findByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func TestDirectoryService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		managerID := uuid.New()
		employeeID := uuid.New()
		repo := &fakeEmployeeRepository{
			getByIDFn: func(ctx context.Context, id string) (*directory.Employee, error) {
				return &directory.Employee{
					ID:         employeeID,
					FullName:   "Dana Rivers",
					Email:      "dana.rivers@example.com",
					Department: "Engineering",
					Position:   "Backend Engineer",
					ReportsTo:  &managerID,
					HireDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		svc := directory.NewService(repo)

		resp, err := svc.GetByID(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Dana Rivers", resp.FullName)
		assert.Equal(t, "2023-06-01", resp.HireDate)
		if assert.NotNil(t, resp.ReportsTo) {
			assert.Equal(t, managerID.String(), *resp.ReportsTo)
		}
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := directory.NewService(&fakeEmployeeRepository{})

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, directoryerrors.ErrEmployeeNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := directory.NewService(&fakeEmployeeRepository{})

		_, err := svc.GetByID(ctx, "emp-1")

		assert.ErrorIs(t, err, directoryerrors.ErrInvalidEmployeeID)
	})
}

func TestDirectoryService_ListReports(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New().String()

	repo := &fakeEmployeeRepository{
		findByManagerFn: func(ctx context.Context, mid string) ([]directory.Employee, error) {
			assert.Equal(t, managerID, mid)
			return []directory.Employee{
				{ID: uuid.New(), FullName: "Avery Chen"},
				{ID: uuid.New(), FullName: "Sam Okafor"},
			}, nil
		},
	}
	svc := directory.NewService(repo)

	resp, err := svc.ListReports(ctx, managerID)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestDirectoryService_ListByDepartment(t *testing.T) {
	ctx := context.Background()

	repo := &fakeEmployeeRepository{
		findByDepartmentFn: func(ctx context.Context, department string) ([]directory.Employee, error) {
			assert.Equal(t, "Engineering", department)
			return []directory.Employee{{ID: uuid.New(), FullName: "Avery Chen"}}, nil
		},
	}
	svc := directory.NewService(repo)

	resp, err := svc.ListByDepartment(ctx, "Engineering")

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
}
