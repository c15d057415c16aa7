package apperror

// The code vocabulary is deliberately small: every sentinel the leave
// services emit maps onto one of these, and ToHTTP folds everything else
// into SERVICE_UNAVAILABLE.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
