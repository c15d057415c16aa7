package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is the per-(employee, leave type, year) accounting record.
// Rows are never deleted; next year's record supersedes this one.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balances_employee_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balances_employee_type_year"`
	Year        int       `gorm:"not null;uniqueIndex:idx_balances_employee_type_year"`

	Allocated decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Used      decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Pending   decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Remaining decimal.Decimal `gorm:"type:numeric(6,2);not null"`

	LastAccrualDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InvariantHolds checks the accounting identity that must be true at rest:
// remaining = allocated - used - pending, with no negative component.
func (b *LeaveBalance) InvariantHolds() bool {
	if b.Used.IsNegative() || b.Pending.IsNegative() || b.Remaining.IsNegative() {
		return false
	}
	return b.Remaining.Equal(b.Allocated.Sub(b.Used).Sub(b.Pending))
}
