package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	directoryerrors "github.com/nirzaf/gohrms/internal/directory/errors"
)

type Service interface {
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	ListByDepartment(ctx context.Context, department string) ([]EmployeeResponse, error)
	ListReports(ctx context.Context, managerID string) ([]EmployeeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, directoryerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, directoryerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) ListByDepartment(ctx context.Context, department string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) ListReports(ctx context.Context, managerID string) ([]EmployeeResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, directoryerrors.ErrInvalidEmployeeID
	}
	employees, err := s.repo.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID.String(),
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		HireDate:   e.HireDate.Format("2006-01-02"),
	}
	if e.ReportsTo != nil {
		v := e.ReportsTo.String()
		resp.ReportsTo = &v
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
