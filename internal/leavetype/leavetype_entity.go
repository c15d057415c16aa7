package leavetype

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`

	// DefaultAllocation seeds a new yearly balance, in days.
	DefaultAllocation decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	RequiresApproval  bool            `gorm:"not null;default:true"`
	IsActive          bool            `gorm:"not null;default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
