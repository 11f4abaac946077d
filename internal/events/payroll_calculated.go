package events

import "time"

const PayrollCalculatedTopic = "hr.payroll.calculated.v1"

// PayrollCalculatedEvent announces persisted payroll totals so downstream
// caches and aggregate views can invalidate precisely.
type PayrollCalculatedEvent struct {
	EventType   string    `json:"event_type"`
	PeriodID    string    `json:"period_id"`
	PayrollIDs  []string  `json:"payroll_ids"`
	EmployeeIDs []string  `json:"employee_ids"`
	OccurredAt  time.Time `json:"occurred_at"`
}
