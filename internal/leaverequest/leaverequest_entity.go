package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

// LeaveRequest exists only once submitted; there is no draft state.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_dates"`

	// DurationInDays is supplied by the caller; this service does not
	// compute business-day calendars.
	DurationInDays decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Reason         string          `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'Submitted';index"`
	ApproverID      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// BalanceYear is the ledger year a request draws from.
func (l *LeaveRequest) BalanceYear() int {
	return l.StartDate.Year()
}
