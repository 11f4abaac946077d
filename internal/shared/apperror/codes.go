package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Import / calculation pipeline
	CodeParseError       = "PARSE_ERROR"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeResolutionError  = "RESOLUTION_ERROR"
	CodeCalculationError = "CALCULATION_ERROR"
	CodePersistenceError = "PERSISTENCE_ERROR"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
