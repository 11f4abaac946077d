package importerrors

import (
	"fmt"
	"net/http"

	"salary-system/internal/shared/apperror"
)

var (
	ErrPeriodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A payroll period is required for the import",
		http.StatusBadRequest,
	)

	ErrNoGroupsRequested = apperror.New(
		apperror.CodeInvalidInput,
		"At least one data group must be selected",
		http.StatusBadRequest,
	)

	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"An .xlsx file upload is required",
		http.StatusBadRequest,
	)
)

// Row-scoped resolution failures carry the literal cell value so the
// operator can find the offending row in the spreadsheet.

func EmployeeNotFound(name string) *apperror.AppError {
	return apperror.New(
		apperror.CodeResolutionError,
		fmt.Sprintf("Employee %q was not found", name),
		http.StatusUnprocessableEntity,
	)
}

func InsuranceTypeNotFound(name string) *apperror.AppError {
	return apperror.New(
		apperror.CodeResolutionError,
		fmt.Sprintf("Insurance type %q was not found", name),
		http.StatusUnprocessableEntity,
	)
}

func PositionNotFound(name string) *apperror.AppError {
	return apperror.New(
		apperror.CodeResolutionError,
		fmt.Sprintf("Position %q was not found", name),
		http.StatusUnprocessableEntity,
	)
}
