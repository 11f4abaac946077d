package catalogerrors

import (
	"net/http"

	"salary-system/internal/shared/apperror"
)

var (
	ErrComponentNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A salary component with this name already exists",
		http.StatusConflict,
	)
)
