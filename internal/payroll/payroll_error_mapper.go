package payroll

import (
	"errors"
	"strings"

	payrollerrors "salary-system/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// MapItemInsertError translates the (payroll_id, component_id) unique
// violation into the user-facing "already imported" conflict.
func MapItemInsertError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err, "uq_payroll_item_component") {
		return payrollerrors.ErrItemsAlreadyImported
	}
	return err
}

// MapHeaderInsertError recognizes a lost create race on the
// (employee_id, period_id) constraint so the reconciler can re-read.
func MapHeaderInsertError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err, "uq_payroll_employee_period") {
		return payrollerrors.ErrHeaderAlreadyExists
	}
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraint)
}
