package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the flattened shape handlers hand to the response writer.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps a service error onto its HTTP representation. Sentinel
// business errors carry their own code and status; anything else reaching
// the handler edge is a storage or infrastructure failure and is reported
// as SERVICE_UNAVAILABLE so it is never mistaken for a business rejection.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  http.StatusServiceUnavailable,
		Code:    CodeServiceUnavailable,
		Message: ErrStorageUnavailable.Message,
	}
}
