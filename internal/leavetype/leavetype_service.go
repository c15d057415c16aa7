package leavetype

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leavetypeerrors "github.com/nirzaf/gohrms/internal/leavetype/errors"
	"github.com/nirzaf/gohrms/internal/shared/storage"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetActive(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	GetByName(ctx context.Context, name string) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, id string) (LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested", zap.String("name", req.Name))

	allocation, err := decimal.NewFromString(req.DefaultAllocation)
	if err != nil || allocation.IsNegative() {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidAllocation
	}

	requiresApproval := true
	if req.RequiresApproval != nil {
		requiresApproval = *req.RequiresApproval
	}

	lt := &LeaveType{
		ID:                uuid.New(),
		Name:              req.Name,
		Description:       req.Description,
		DefaultAllocation: allocation,
		RequiresApproval:  requiresApproval,
		IsActive:          true,
	}

	if err := s.repo.Insert(ctx, lt); err != nil {
		if storage.IsUniqueViolation(err) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNameTaken
		}
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetActive(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}
	lt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) GetByName(ctx context.Context, name string) (LeaveTypeResponse, error) {
	lt, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

// Deactivate retires a leave type from the catalog without removing it.
func (s *service) Deactivate(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}
	lt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.IsActive = false
	lt.UpdatedAt = time.Now().UTC()
	if err := s.repo.Replace(ctx, lt); err != nil {
		s.logger.Error("deactivate leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("deactivate leave type success", zap.String("leave_type_id", id))
	return mapToResponse(*lt), nil
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                lt.ID.String(),
		Name:              lt.Name,
		Description:       lt.Description,
		DefaultAllocation: lt.DefaultAllocation.String(),
		RequiresApproval:  lt.RequiresApproval,
		IsActive:          lt.IsActive,
	}
}
