package repositories

import "errors"

// Shared repository errors. Services translate them into user-facing apperrors.
var (
	// ErrNotFound is returned when no row matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrParentNotFound is returned when an insert references a missing parent row.
	ErrParentNotFound = errors.New("parent record not found")
	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("record already exists")
)
