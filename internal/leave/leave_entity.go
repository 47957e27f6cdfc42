package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_tenant_requested"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	RequestNumber string    `gorm:"type:varchar(20);not null"`

	Type         LeaveType `gorm:"column:leave_type;type:varchar(20);not null"`
	StartDate    time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate      time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	DurationDays int       `gorm:"type:int;not null"`
	Reason       string    `gorm:"type:text;not null"`

	RequestedDate time.Time  `gorm:"not null;index:idx_leave_requests_tenant_requested,sort:desc"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Pending'"`
	DecidedBy     *uuid.UUID `gorm:"type:uuid"`
	DecidedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}
