package catalog

import (
	"time"

	"github.com/google/uuid"
)

type ComponentType string

const (
	ComponentEarning   ComponentType = "earning"
	ComponentDeduction ComponentType = "deduction"
)

type ComponentCategory string

const (
	CategoryBasicSalary       ComponentCategory = "basic_salary"
	CategoryBenefits          ComponentCategory = "benefits"
	CategoryPersonalInsurance ComponentCategory = "personal_insurance"
	CategoryEmployerInsurance ComponentCategory = "employer_insurance"
	CategoryPersonalTax       ComponentCategory = "personal_tax"
	CategoryOtherDeductions   ComponentCategory = "other_deductions"
)

// SalaryComponent is an immutable catalog entry; line items reference it
// by id and the calculator keys its breakdown on the category.
type SalaryComponent struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string            `gorm:"type:varchar(120);not null;uniqueIndex:uq_salary_component_name"`
	Type      ComponentType     `gorm:"type:varchar(20);not null"`
	Category  ComponentCategory `gorm:"type:varchar(40);not null;index"`
	IsTaxable bool              `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}
