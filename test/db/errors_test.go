package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/puddle"

	"github.com/hackerclone/hackerclone/internal/common/db"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
)

func TestClassifyError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "no rows is not found",
			err:  pgx.ErrNoRows,
			want: commonerrors.ErrNotFound,
		},
		{
			name: "closed pool is pool exhaustion",
			err:  puddle.ErrClosedPool,
			want: commonerrors.ErrPoolExhausted,
		},
		{
			name: "too many connections is pool exhaustion",
			err:  &pgconn.PgError{Code: "53300"},
			want: commonerrors.ErrPoolExhausted,
		},
		{
			name: "unique violation is a constraint violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			want: commonerrors.ErrConstraintViolation,
		},
		{
			name: "foreign key violation is a constraint violation",
			err:  &pgconn.PgError{Code: "23503"},
			want: commonerrors.ErrConstraintViolation,
		},
		{
			name: "not null violation is a constraint violation",
			err:  &pgconn.PgError{Code: "23502"},
			want: commonerrors.ErrConstraintViolation,
		},
		{
			name: "anything else is a store failure",
			err:  errors.New("connection reset by peer"),
			want: commonerrors.ErrStoreFailure,
		},
		{
			name: "unrelated sqlstate is a store failure",
			err:  &pgconn.PgError{Code: "42P01"},
			want: commonerrors.ErrStoreFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := db.ClassifyError(tc.err)
			if tc.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	if !db.IsUniqueViolation(dup, "users_username_key") {
		t.Error("expected match on the named constraint")
	}

	if !db.IsUniqueViolation(dup, "") {
		t.Error("expected empty constraint to match any unique violation")
	}

	if db.IsUniqueViolation(dup, "posts_pkey") {
		t.Error("expected no match on a different constraint")
	}

	if db.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "users_username_key") {
		t.Error("expected no match on a non-unique violation")
	}

	if db.IsUniqueViolation(errors.New("plain error"), "users_username_key") {
		t.Error("expected no match on a non-driver error")
	}
}
