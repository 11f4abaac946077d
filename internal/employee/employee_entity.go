package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string     `gorm:"type:varchar(40);uniqueIndex:uq_employee_number"`
	FullName       string     `gorm:"type:varchar(120);not null;index"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	PositionID     *uuid.UUID `gorm:"type:uuid;index"`
	HireDate       *time.Time `gorm:"type:date"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// CategoryAssignment is append-style history: each change is a new row
// keyed by effective period, never an update.
type CategoryAssignment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryName string     `gorm:"type:varchar(60);not null"`
	PeriodID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
}

func (CategoryAssignment) TableName() string {
	return "employee_category_assignments"
}

type JobHistory struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	PositionID    *uuid.UUID `gorm:"type:uuid"`
	RankID        *uuid.UUID `gorm:"type:uuid"`
	EffectiveDate time.Time  `gorm:"type:date;not null"`
	CreatedAt     time.Time
}

func (JobHistory) TableName() string {
	return "employee_job_history"
}
