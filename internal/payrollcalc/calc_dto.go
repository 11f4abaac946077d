package payrollcalc

import "github.com/shopspring/decimal"

// Breakdown splits the totals by component category. Allowances is a
// reserved bucket: no category feeds it yet, so it is always zero, but
// the payslip layout already has a slot for it.
type Breakdown struct {
	BasicSalary       decimal.Decimal `json:"basicSalary"`
	Benefits          decimal.Decimal `json:"benefits"`
	Allowances        decimal.Decimal `json:"allowances"`
	PersonalInsurance decimal.Decimal `json:"personalInsurance"`
	PersonalTax       decimal.Decimal `json:"personalTax"`
	OtherDeductions   decimal.Decimal `json:"otherDeductions"`

	// Employer-side insurance is reported for cost visibility only; it
	// never enters gross, deductions, or net.
	EmployerInsurance decimal.Decimal `json:"employerInsurance"`
}

type CalculationResult struct {
	PayrollID  string `json:"payrollId"`
	EmployeeID string `json:"employeeId"`
	PeriodID   string `json:"periodId"`

	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	Breakdown       Breakdown       `json:"breakdown"`

	ItemCounts map[string]int `json:"itemCounts"`
	Success    bool           `json:"success"`
	Errors     []string       `json:"errors"`
}

// BatchResult aggregates a calculation run. Monetary totals cover
// successful results only; a failed payroll contributes to FailedCount
// and nothing else.
type BatchResult struct {
	Total        int `json:"total"`
	SuccessCount int `json:"successCount"`
	FailedCount  int `json:"failedCount"`

	TotalGrossPay          decimal.Decimal `json:"totalGrossPay"`
	TotalDeductions        decimal.Decimal `json:"totalDeductions"`
	TotalNetPay            decimal.Decimal `json:"totalNetPay"`
	TotalEmployerInsurance decimal.Decimal `json:"totalEmployerInsurance"`

	Results []CalculationResult `json:"results"`
}
