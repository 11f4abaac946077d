package catalog

import (
	"errors"
	"strings"

	catalogerrors "salary-system/internal/catalog/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_component_name" {
			return catalogerrors.ErrComponentNameAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_component_name") {
		return catalogerrors.ErrComponentNameAlreadyExists
	}

	return err
}
