package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string    `gorm:"type:varchar(200);not null"`
	Email      string    `gorm:"type:varchar(200);uniqueIndex"`
	Department string    `gorm:"type:varchar(100);index"`
	Position   string    `gorm:"type:varchar(100)"`

	// ReportsTo holds the manager's employee id.
	ReportsTo *uuid.UUID `gorm:"type:uuid;index"`

	HireDate  time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
