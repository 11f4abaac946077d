package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft      = "draft"
	StatusCalculated = "calculated"
	StatusApproved   = "approved"
	StatusPaid       = "paid"
)

// Period is read-only from the pipeline's perspective; it only supplies
// the pay date used when synthesizing new headers.
type Period struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year      int        `gorm:"not null;uniqueIndex:uq_period_year_month"`
	Month     int        `gorm:"not null;uniqueIndex:uq_period_year_month"`
	PayDate   *time.Time `gorm:"type:date"`
	CreatedAt time.Time
}

func (Period) TableName() string {
	return "payroll_periods"
}

// Header is the per-employee-per-period aggregate. The reconciler
// creates it as a draft with totals unset; the calculator is the only
// writer of the totals and the calculated status.
type Header struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period"`
	PeriodID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period"`
	PayDate    time.Time `gorm:"type:date;not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'draft';index"`

	GrossPay        decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	TotalDeductions decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	NetPay          decimal.NullDecimal `gorm:"type:numeric(14,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Header) TableName() string {
	return "payrolls"
}

type LineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_component"`
	ComponentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_item_component"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes       *string         `gorm:"type:text"`
	CreatedAt   time.Time
}

func (LineItem) TableName() string {
	return "payroll_items"
}

// ContributionBase rows are append-style history: each adjustment is a
// new row keyed by effective period, preserving the audit trail.
type ContributionBase struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	InsuranceTypeID  uuid.UUID       `gorm:"type:uuid;not null"`
	ContributionBase decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PeriodID         *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt        time.Time
}

func (ContributionBase) TableName() string {
	return "employee_contribution_bases"
}

type InsuranceType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(60);not null;uniqueIndex:uq_insurance_type_name"`
}

func (InsuranceType) TableName() string {
	return "insurance_types"
}
