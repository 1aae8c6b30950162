package apperrors

import "errors"

// Resource errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Remote question-answering backend errors
var (
	// ErrBackendUnavailable is returned when the liveness probe fails.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendTimeout is returned when a bounded wait on the backend expires.
	ErrBackendTimeout = errors.New("backend request timed out")
	// ErrBackendFailed covers transport failures and non-2xx answers.
	ErrBackendFailed = errors.New("backend request failed")
	// ErrBackendMalformed is returned when the backend answers 2xx with a body we cannot decode.
	ErrBackendMalformed = errors.New("backend returned a malformed response")
)

// CustomError carries a user-facing message on top of a sentinel error.
type CustomError struct {
	Err     error
	Message string
	Details string
	// Status overrides the HTTP status derived from Err when non-zero.
	Status int
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches the underlying failure text shown next to the message.
func (e *CustomError) WithDetails(details string) *CustomError {
	e.Details = details
	return e
}

// WithStatus pins the HTTP status, e.g. to mirror an upstream response code.
func (e *CustomError) WithStatus(status int) *CustomError {
	e.Status = status
	return e
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewResourceNotFoundError creates a not-found error with a message, e.g. "Course not found".
func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewValidationError creates a validation error with a message, e.g. "Name is required".
func NewValidationError(message string) error {
	return NewCustomError(ErrValidationFailed, message)
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return NewCustomError(ErrConflict, message)
}

// Is reports whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Message returns the user-facing text of err, falling back to fallback
// when err carries no CustomError.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
