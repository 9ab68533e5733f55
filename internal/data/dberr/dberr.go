// Package dberr translates driver failures into the shared sentinels so
// callers can branch on errors.Is instead of SQLSTATE codes.
package dberr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/artcove/artcove-backend/internal/pkg/errors"
)

// Map wraps err with the sentinel matching its failure class. Unique
// violations become ErrAlreadyExists, foreign key violations become
// ErrFailedPrecondition, missing rows become ErrNotFound. Anything else
// passes through wrapped with op only.
func Map(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w: %v", op, errs.ErrAlreadyExists, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w: %v", op, errs.ErrFailedPrecondition, err)
		}
	}

	// The sqlite driver reports constraint failures as plain text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"):
		return fmt.Errorf("%s: %w: %v", op, errs.ErrAlreadyExists, err)
	case strings.Contains(msg, "foreign key constraint"):
		return fmt.Errorf("%s: %w: %v", op, errs.ErrFailedPrecondition, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
