package apperror

import (
	"fmt"
	"net/http"
)

// ErrStorageUnavailable is the catch-all the handler edge reports when an
// error is not one of the feature sentinels.
var ErrStorageUnavailable = New(
	CodeServiceUnavailable,
	"Storage is temporarily unavailable",
	http.StatusServiceUnavailable,
)

// RequiredField builds the standard message for a missing required field.
func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

// InvalidField builds the standard message for a field that failed validation.
func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}
