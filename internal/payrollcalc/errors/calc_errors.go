package calcerrors

import (
	"net/http"

	"salary-system/internal/shared/apperror"
)

var (
	ErrNoPayrollsSelected = apperror.New(
		apperror.CodeInvalidInput,
		"At least one payroll must be selected for calculation",
		http.StatusBadRequest,
	)

	ErrNoPayrollsInPeriod = apperror.New(
		apperror.CodeNotFound,
		"The period has no payroll records to calculate",
		http.StatusNotFound,
	)
)
