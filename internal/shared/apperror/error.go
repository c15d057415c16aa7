package apperror

// AppError is a sentinel business error: a stable machine code, a message
// safe to show callers, and the HTTP status the handler edge should use.
// Feature packages declare their sentinels once in an errors/ subpackage
// and compare with errors.Is, so no error text is matched anywhere.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}
