package events

import "time"

const PayrollImportCompletedTopic = "hr.payroll.import.completed.v1"

type PayrollImportCompletedEvent struct {
	EventType    string    `json:"event_type"`
	PeriodID     string    `json:"period_id"`
	TotalRows    int       `json:"total_rows"`
	SuccessCount int       `json:"success_count"`
	FailedCount  int       `json:"failed_count"`
	PayrollIDs   []string  `json:"payroll_ids"`
	EmployeeIDs  []string  `json:"employee_ids"`
	OccurredAt   time.Time `json:"occurred_at"`
}
