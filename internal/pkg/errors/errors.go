package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPermissionDenied is a generic sentinel for authenticated callers
	// that lack the rights to perform an operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAlreadyExists is a generic sentinel for unique constraint hits.
	ErrAlreadyExists = errors.New("already exists")
	// ErrFailedPrecondition is a generic sentinel for referenced rows that
	// do not exist or state that forbids the operation.
	ErrFailedPrecondition = errors.New("failed precondition")
)
