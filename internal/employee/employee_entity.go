package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is the directory record. Only the leave balance columns are written by this service.
type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName string
	Email    string

	VacationBalance decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	SickBalance     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	PersonalBalance decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
