package catalog

type CreateSalaryComponentRequest struct {
	Name      string `json:"name" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=earning deduction"`
	Category  string `json:"category" binding:"required,oneof=basic_salary benefits personal_insurance employer_insurance personal_tax other_deductions"`
	IsTaxable *bool  `json:"is_taxable"`
}

type SalaryComponentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	IsTaxable bool   `json:"is_taxable"`
}
