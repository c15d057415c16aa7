package leavetype_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/leavetype"
	leavetypeerrors "github.com/nirzaf/gohrms/internal/leavetype/errors"
)

type fakeLeaveTypeRepository struct {
	insertFn     func(ctx context.Context, lt *leavetype.LeaveType) error
	getByIDFn    func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	getByNameFn  func(ctx context.Context, name string) (*leavetype.LeaveType, error)
	findActiveFn func(ctx context.Context) ([]leavetype.LeaveType, error)
	replaceFn    func(ctx context.Context, lt *leavetype.LeaveType) error
}

func (f *fakeLeaveTypeRepository) Insert(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) GetByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) GetByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	if f.getByNameFn != nil {
		return f.getByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindActive(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) Replace(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.replaceFn != nil {
		return f.replaceFn(ctx, lt)
	}
	return nil
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success with approval defaulting on", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		var inserted *leavetype.LeaveType
		repo.insertFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			inserted = lt
			return nil
		}
		svc := leavetype.NewService(repo)

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:              "Annual Leave",
			Description:       "Paid vacation days",
			DefaultAllocation: "20",
		})

		assert.NoError(t, err)
		assert.True(t, resp.RequiresApproval)
		assert.True(t, resp.IsActive)
		assert.Equal(t, "20", resp.DefaultAllocation)
		if assert.NotNil(t, inserted) {
			assert.True(t, inserted.DefaultAllocation.Equal(decimal.RequireFromString("20")))
		}
	})

	t.Run("explicit requires_approval false", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo)

		noApproval := false
		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:              "Sick Leave",
			DefaultAllocation: "10",
			RequiresApproval:  &noApproval,
		})

		assert.NoError(t, err)
		assert.False(t, resp.RequiresApproval)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{}
		repo.insertFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			return &pgconn.PgError{Code: "23505"}
		}
		svc := leavetype.NewService(repo)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:              "Annual Leave",
			DefaultAllocation: "20",
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameTaken)
	})

	t.Run("negative allocation rejected", func(t *testing.T) {
		svc := leavetype.NewService(&fakeLeaveTypeRepository{})

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:              "Annual Leave",
			DefaultAllocation: "-1",
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidAllocation)
	})

	t.Run("unparseable allocation rejected", func(t *testing.T) {
		svc := leavetype.NewService(&fakeLeaveTypeRepository{})

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:              "Annual Leave",
			DefaultAllocation: "twenty",
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidAllocation)
	})
}

func TestLeaveTypeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		svc := leavetype.NewService(&fakeLeaveTypeRepository{})

		_, err := svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := leavetype.NewService(&fakeLeaveTypeRepository{})

		_, err := svc.GetByID(ctx, "annual-leave")

		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidLeaveTypeID)
	})
}

func TestLeaveTypeService_GetActive(t *testing.T) {
	ctx := context.Background()

	repo := &fakeLeaveTypeRepository{}
	repo.findActiveFn = func(ctx context.Context) ([]leavetype.LeaveType, error) {
		return []leavetype.LeaveType{
			{ID: uuid.New(), Name: "Annual Leave", DefaultAllocation: decimal.RequireFromString("20"), IsActive: true},
			{ID: uuid.New(), Name: "Sick Leave", DefaultAllocation: decimal.RequireFromString("10"), IsActive: true},
		}, nil
	}
	svc := leavetype.NewService(repo)

	resp, err := svc.GetActive(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Annual Leave", resp[0].Name)
}

func TestLeaveTypeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := &fakeLeaveTypeRepository{}
	repo.getByIDFn = func(ctx context.Context, lid string) (*leavetype.LeaveType, error) {
		return &leavetype.LeaveType{
			ID:                id,
			Name:              "Annual Leave",
			DefaultAllocation: decimal.RequireFromString("20"),
			IsActive:          true,
		}, nil
	}
	var replaced *leavetype.LeaveType
	repo.replaceFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
		replaced = lt
		return nil
	}
	svc := leavetype.NewService(repo)

	resp, err := svc.Deactivate(ctx, id.String())

	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
	if assert.NotNil(t, replaced) {
		assert.False(t, replaced.IsActive)
	}
}
