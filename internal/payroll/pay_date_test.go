package payroll_test

import (
	"testing"
	"time"

	"salary-system/internal/payroll"

	"github.com/stretchr/testify/assert"
)

func TestResolvePayDate(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("configured pay date wins", func(t *testing.T) {
		payDate := time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC)
		p := &payroll.Period{Year: 2024, Month: 1, PayDate: &payDate}

		assert.Equal(t, payDate, payroll.ResolvePayDate(p, now))
	})

	t.Run("falls back to last day of the period month", func(t *testing.T) {
		p := &payroll.Period{Year: 2024, Month: 2}

		// 2024 is a leap year.
		assert.Equal(t,
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			payroll.ResolvePayDate(p, now))
	})

	t.Run("non-leap february", func(t *testing.T) {
		p := &payroll.Period{Year: 2023, Month: 2}

		assert.Equal(t,
			time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
			payroll.ResolvePayDate(p, now))
	})

	t.Run("december rolls into the right year", func(t *testing.T) {
		p := &payroll.Period{Year: 2024, Month: 12}

		assert.Equal(t,
			time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			payroll.ResolvePayDate(p, now))
	})

	t.Run("nil period falls back to the current month", func(t *testing.T) {
		assert.Equal(t,
			time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			payroll.ResolvePayDate(nil, now))
	})

	t.Run("period without usable year or month falls back to now", func(t *testing.T) {
		p := &payroll.Period{}

		assert.Equal(t,
			time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			payroll.ResolvePayDate(p, now))
	})
}
