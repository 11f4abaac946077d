package payrollimport

import (
	"salary-system/internal/sheet"

	"github.com/google/uuid"
)

// ImportConfig is the operator's request: which period the rows belong
// to, which data groups to walk, and whether a failed validation gate
// should skip the group entirely.
type ImportConfig struct {
	PeriodID             uuid.UUID
	Groups               []sheet.DataGroup
	ValidateBeforeImport bool
}

// ProgressEvent is emitted twice per group: once when the group starts
// and once when it finishes. Totals are exact because every group is
// parsed before the first row is written.
type ProgressEvent struct {
	Group          sheet.DataGroup `json:"group"`
	GroupIndex     int             `json:"groupIndex"`
	GroupCount     int             `json:"groupCount"`
	RowsInGroup    int             `json:"rowsInGroup"`
	RowsProcessed  int             `json:"rowsProcessed"`
	OverallPercent float64         `json:"overallPercent"`
}

// ProgressFunc receives progress events synchronously, in order.
type ProgressFunc func(ProgressEvent)

// RowError pins a failure to its spreadsheet coordinates. Row is the
// 1-based spreadsheet row number, so data row i reports as i+2 (one for
// the header, one for the zero index).
type RowError struct {
	Row     int             `json:"row"`
	Group   sheet.DataGroup `json:"group"`
	Field   string          `json:"field,omitempty"`
	Message string          `json:"message"`
}

// ValidationResult is the pre-import gate's verdict for one group.
type ValidationResult struct {
	IsValid  bool       `json:"isValid"`
	Errors   []RowError `json:"errors"`
	Warnings []string   `json:"warnings"`
}

// ImportResult is the aggregate outcome across all requested groups.
type ImportResult struct {
	Success      bool       `json:"success"`
	TotalRows    int        `json:"totalRows"`
	SuccessCount int        `json:"successCount"`
	FailedCount  int        `json:"failedCount"`
	Errors       []RowError `json:"errors"`
	Warnings     []string   `json:"warnings"`

	PeriodID    string   `json:"periodId"`
	PayrollIDs  []string `json:"payrollIds"`
	EmployeeIDs []string `json:"employeeIds"`
}
