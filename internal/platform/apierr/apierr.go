package apierr

import (
	"errors"
	"fmt"
	"net/http"

	errs "github.com/artcove/artcove-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From maps well-known sentinels onto an HTTP-shaped error. Errors that
// already carry a status pass through unchanged; anything unrecognized
// becomes a 500 with the given fallback code.
func From(err error, fallbackCode string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, errs.ErrPermissionDenied):
		return New(http.StatusForbidden, "forbidden", err)
	case errors.Is(err, errs.ErrAlreadyExists):
		return New(http.StatusConflict, "already_exists", err)
	case errors.Is(err, errs.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, errs.ErrFailedPrecondition):
		return New(http.StatusUnprocessableEntity, "failed_precondition", err)
	}
	return New(http.StatusInternalServerError, fallbackCode, err)
}
