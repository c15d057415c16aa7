package leaverequest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nirzaf/gohrms/internal/directory"
	"github.com/nirzaf/gohrms/internal/events"
	leaverequesterrors "github.com/nirzaf/gohrms/internal/leaverequest/errors"
	"github.com/nirzaf/gohrms/internal/messaging/kafka"
	"github.com/nirzaf/gohrms/internal/shared/contextutil"
)

// Ledger is the balance accounting contract the workflow drives. Reserve
// runs at submission, Commit at approval, Release at rejection and
// cancellation. Satisfied by leavebalance.Service.
type Ledger interface {
	Reserve(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Commit(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
	Release(ctx context.Context, employeeID, leaveTypeID string, year int, days decimal.Decimal) error
}

// Directory resolves the reporting set for the approval queue. It is
// re-queried on every call so organizational changes show up immediately.
type Directory interface {
	FindByManager(ctx context.Context, managerID string) ([]directory.Employee, error)
}

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, approverID, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, approverID, id, rejectionReason string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListByStatus(ctx context.Context, status string) ([]LeaveRequestResponse, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]LeaveRequestResponse, error)
	ListPendingForManager(ctx context.Context, managerID string) ([]LeaveRequestResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	ledger Ledger
	dir    Directory
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	ledger Ledger,
	dir Directory,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, dir: dir, outbox: outbox, logger: l}
}

// Submit reserves the days first, then persists the request. The
// reservation is the concurrency gate: two overlapping submissions cannot
// both pass it when only one request's worth of days remains.
func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("submit leave request",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, leaveTypeUUID, startDate, endDate, duration, err := validateSubmitRequest(req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	year := startDate.Year()
	if err := s.ledger.Reserve(ctx, req.EmployeeID, req.LeaveTypeID, year, duration); err != nil {
		s.logger.Warn("submit leave reservation rejected", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	l := &LeaveRequest{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		LeaveTypeID:    leaveTypeUUID,
		StartDate:      startDate,
		EndDate:        endDate,
		DurationInDays: duration,
		Reason:         req.Reason,
		Status:         StatusSubmitted,
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.Insert(ctx, l); err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, s.newOutboxEvent(ctx, l, events.LeaveSubmittedEventType))
	})
	if txErr != nil {
		s.logger.Error("submit leave persist failed", zap.Error(txErr))
		// The reservation already debited the balance; hand the days back.
		if relErr := s.ledger.Release(ctx, req.EmployeeID, req.LeaveTypeID, year, duration); relErr != nil {
			s.logger.Error("submit leave reservation rollback failed",
				zap.String("employee_id", req.EmployeeID),
				zap.String("leave_type_id", req.LeaveTypeID),
				zap.Int("year", year),
				zap.Error(relErr),
			)
		}
		return LeaveRequestResponse{}, txErr
	}

	s.logger.Info("submit leave success",
		zap.String("leave_request_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("duration_in_days", duration.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, approverID, id string) (LeaveRequestResponse, error) {
	return s.transition(ctx, approverID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, approverID, id, rejectionReason string) (LeaveRequestResponse, error) {
	if rejectionReason == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRejectionReasonRequired
	}
	return s.transition(ctx, approverID, id, StatusRejected, &rejectionReason)
}

// Cancel withdraws a still-Submitted request. Approved leave cannot be
// cancelled here; reversing an approval is a ledger reconciliation.
func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	return s.transition(ctx, actorID, id, StatusCancelled, nil)
}

// transition applies a terminal decision. The request mutation and the
// outbox write run in one transaction; the ledger mutation goes last so a
// ledger failure rolls everything back and the request stays Submitted.
// The status flip itself is a conditional update keyed on Submitted, so a
// concurrent decider that loses the race gets InvalidState instead of
// overwriting the winner and double-driving the ledger.
func (s *service) transition(ctx context.Context, actorID, id, targetStatus string, rejectionReason *string) (LeaveRequestResponse, error) {
	s.logger.Debug("transition leave request",
		zap.String("leave_request_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}

	var result LeaveRequest
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := qtx.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaverequesterrors.ErrLeaveRequestNotFound
			}
			return err
		}
		if l.Status != StatusSubmitted {
			s.logger.Warn("transition leave request invalid",
				zap.String("leave_request_id", id),
				zap.String("from_status", l.Status),
				zap.String("to_status", targetStatus),
			)
			return leaverequesterrors.ErrInvalidStatusTransition
		}

		now := time.Now().UTC()
		l.Status = targetStatus
		l.UpdatedAt = now
		switch targetStatus {
		case StatusApproved:
			l.ApproverID = &actorUUID
			l.ApprovedAt = &now
		case StatusRejected:
			l.ApproverID = &actorUUID
			l.ApprovedAt = &now
			l.RejectionReason = rejectionReason
		case StatusCancelled:
			// The employee withdraws their own request; no approver is recorded.
		}

		ok, err := qtx.TransitionStatus(ctx, l)
		if err != nil {
			return err
		}
		if !ok {
			// Another decider got there between our read and the update.
			return leaverequesterrors.ErrInvalidStatusTransition
		}
		if err := s.outbox.WithTx(tx).Create(ctx, s.newOutboxEvent(ctx, l, eventTypeFor(targetStatus))); err != nil {
			return err
		}

		employeeID := l.EmployeeID.String()
		leaveTypeID := l.LeaveTypeID.String()
		year := l.BalanceYear()
		if targetStatus == StatusApproved {
			err = s.ledger.Commit(ctx, employeeID, leaveTypeID, year, l.DurationInDays)
		} else {
			err = s.ledger.Release(ctx, employeeID, leaveTypeID, year, l.DurationInDays)
		}
		if err != nil {
			s.logger.Warn("transition leave ledger rejected",
				zap.String("leave_request_id", id),
				zap.String("target_status", targetStatus),
				zap.Error(err),
			)
			return err
		}

		result = *l
		return nil
	})
	if txErr != nil {
		return LeaveRequestResponse{}, txErr
	}

	s.logger.Info("transition leave request success",
		zap.String("leave_request_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(result), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaverequesterrors.ErrInvalidEmployeeID
	}
	requests, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListByStatus(ctx context.Context, status string) ([]LeaveRequestResponse, error) {
	switch status {
	case StatusSubmitted, StatusApproved, StatusRejected, StatusCancelled:
	default:
		return nil, leaverequesterrors.ErrInvalidStatus
	}
	requests, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListByDateRange(ctx context.Context, startDate, endDate string) ([]LeaveRequestResponse, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, leaverequesterrors.ErrInvalidDateRange
	}
	requests, err := s.repo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

// ListPendingForManager joins the directory's reporting set with the
// Submitted requests. The reporting set is resolved fresh on every call.
func (s *service) ListPendingForManager(ctx context.Context, managerID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, leaverequesterrors.ErrInvalidEmployeeID
	}

	reports, err := s.dir.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return []LeaveRequestResponse{}, nil
	}

	employeeIDs := make([]string, len(reports))
	for i, e := range reports {
		employeeIDs[i] = e.ID.String()
	}

	requests, err := s.repo.FindSubmittedForEmployees(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

// Delete hides a request from all read paths while retaining it for audit.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaverequesterrors.ErrInvalidRequestID
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaverequesterrors.ErrLeaveRequestNotFound
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *service) newOutboxEvent(ctx context.Context, l *LeaveRequest, eventType string) kafka.OutboxEvent {
	payload, _ := json.Marshal(events.LeaveStatusChangedEvent{
		EventType:      eventType,
		LeaveRequestID: l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		LeaveTypeID:    l.LeaveTypeID.String(),
		Status:         l.Status,
		DurationInDays: l.DurationInDays.String(),
		OccurredAt:     time.Now().UTC(),
	})
	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
}

func eventTypeFor(status string) string {
	switch status {
	case StatusApproved:
		return events.LeaveApprovedEventType
	case StatusRejected:
		return events.LeaveRejectedEventType
	default:
		return events.LeaveCancelledEventType
	}
}

func validateSubmitRequest(req SubmitLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, decimal.Decimal, error) {
	fail := func(err error) (uuid.UUID, uuid.UUID, time.Time, time.Time, decimal.Decimal, error) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, decimal.Zero, err
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return fail(leaverequesterrors.ErrInvalidEmployeeID)
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return fail(leaverequesterrors.ErrInvalidLeaveTypeID)
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return fail(err)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return fail(err)
	}
	if startDate.After(endDate) {
		return fail(leaverequesterrors.ErrInvalidDateRange)
	}
	duration, err := decimal.NewFromString(req.DurationInDays)
	if err != nil || !duration.IsPositive() {
		return fail(leaverequesterrors.ErrInvalidDuration)
	}
	return employeeUUID, leaveTypeUUID, startDate, endDate, duration, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		LeaveTypeID:    l.LeaveTypeID.String(),
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		DurationInDays: l.DurationInDays.String(),
		Reason:         l.Reason,
		Status:         l.Status,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.Format(time.RFC3339),
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
