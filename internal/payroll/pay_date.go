package payroll

import "time"

// ResolvePayDate picks the date stamped on a synthesized header:
// the period's configured pay date, else the last calendar day of the
// period's month, else the last day of the current month.
func ResolvePayDate(p *Period, now time.Time) time.Time {
	if p != nil {
		if p.PayDate != nil {
			return *p.PayDate
		}
		if p.Year > 0 && p.Month >= 1 && p.Month <= 12 {
			return lastDayOfMonth(p.Year, time.Month(p.Month))
		}
	}
	return lastDayOfMonth(now.Year(), now.Month())
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	// Day 0 of the next month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
