package qaclient

import (
	"fmt"

	"github.com/coursehub/coursehub/internal/pkg/apperrors"
)

// OperationErrorCode classifies a failed call to the remote backend.
type OperationErrorCode string

const (
	OperationErrorUnavailable     OperationErrorCode = "unavailable"
	OperationErrorTimeout         OperationErrorCode = "timeout"
	OperationErrorTransportFailed OperationErrorCode = "transport_failed"
	OperationErrorStatus          OperationErrorCode = "bad_status"
	OperationErrorEncodeFailed    OperationErrorCode = "encode_failed"
	OperationErrorDecodeFailed    OperationErrorCode = "decode_failed"
)

// OperationError describes a failed remote call. It matches the apperrors
// backend sentinels through errors.Is so callers never inspect codes directly.
type OperationError struct {
	Code       OperationErrorCode
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

func (e *OperationError) Error() string {
	if e == nil {
		return "backend operation failed"
	}
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return fmt.Sprintf("backend %s failed: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("backend %s failed (code=%s status=%d)", e.Operation, e.Code, e.StatusCode)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is maps the error code onto the apperrors taxonomy.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case apperrors.ErrBackendUnavailable:
		return e.Code == OperationErrorUnavailable
	case apperrors.ErrBackendTimeout:
		return e.Code == OperationErrorTimeout
	case apperrors.ErrBackendFailed:
		return e.Code == OperationErrorTransportFailed || e.Code == OperationErrorStatus || e.Code == OperationErrorEncodeFailed
	case apperrors.ErrBackendMalformed:
		return e.Code == OperationErrorDecodeFailed
	}
	return false
}

func opErr(op string, code OperationErrorCode, msg string, cause error) error {
	return &OperationError{
		Code:      code,
		Operation: op,
		Message:   msg,
		Cause:     cause,
	}
}
