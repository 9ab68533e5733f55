package dberr

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/artcove/artcove-backend/internal/pkg/errors"
)

func TestMap(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil_passes_through",
			err:  nil,
			want: nil,
		},
		{
			name: "record_not_found",
			err:  gorm.ErrRecordNotFound,
			want: errs.ErrNotFound,
		},
		{
			name: "pg_unique_violation",
			err:  &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "idx_user_username"`},
			want: errs.ErrAlreadyExists,
		},
		{
			name: "pg_foreign_key_violation",
			err:  &pgconn.PgError{Code: "23503", Message: `insert or update on table "asset" violates foreign key constraint`},
			want: errs.ErrFailedPrecondition,
		},
		{
			name: "sqlite_unique_violation",
			err:  errors.New("UNIQUE constraint failed: user.username"),
			want: errs.ErrAlreadyExists,
		},
		{
			name: "sqlite_foreign_key_violation",
			err:  errors.New("FOREIGN KEY constraint failed"),
			want: errs.ErrFailedPrecondition,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Map("test.op", tc.err)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("Map(nil)=%v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("Map(%v)=%v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestMapKeepsUnknownErrors(t *testing.T) {
	orig := errors.New("connection refused")
	got := Map("user.create", orig)
	if !errors.Is(got, orig) {
		t.Fatalf("Map lost the original error: %v", got)
	}
	for _, sentinel := range []error{errs.ErrAlreadyExists, errs.ErrFailedPrecondition, errs.ErrNotFound} {
		if errors.Is(got, sentinel) {
			t.Fatalf("Map misclassified %v as %v", orig, sentinel)
		}
	}
}
