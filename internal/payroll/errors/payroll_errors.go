package payrollerrors

import (
	"net/http"

	"salary-system/internal/shared/apperror"
)

var (
	// ErrItemsAlreadyImported is the user-facing translation of the
	// (payroll_id, component_id) unique violation. Re-import without
	// cleanup is the most common operator mistake this pipeline guards
	// against, so it gets an actionable message instead of a raw
	// constraint error.
	ErrItemsAlreadyImported = apperror.New(
		apperror.CodeConflict,
		"Payroll data for this employee and period already exists, delete it before re-importing",
		http.StatusConflict,
	)

	// ErrHeaderAlreadyExists signals the reconciler lost a create race;
	// it re-reads instead of failing.
	ErrHeaderAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A payroll record for this employee and period already exists",
		http.StatusConflict,
	)

	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll period not found",
		http.StatusNotFound,
	)

	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)
)
