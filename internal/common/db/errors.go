package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/puddle"

	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
	"github.com/hackerclone/hackerclone/internal/observability/metrics"
)

// ClassifyError collapses the driver's failure modes into the domain
// taxonomy. Repositories map constraint-specific cases (duplicate username)
// before falling back to this.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return commonerrors.ErrNotFound
	}

	if errors.Is(err, puddle.ErrClosedPool) {
		return commonerrors.ErrPoolExhausted.WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "53300": // too_many_connections
			return commonerrors.ErrPoolExhausted.WithCause(err)
		case "23503", "23502", "23514", "23505":
			return commonerrors.ErrConstraintViolation.WithCause(err)
		}
	}

	return commonerrors.ErrStoreFailure.WithCause(err)
}

func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
}

func HandleQueryError(err error, operation, table string, startTime time.Time) error {
	duration := time.Since(startTime).Seconds()
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(duration)

	if err == nil {
		return nil
	}
	errorType := fmt.Sprintf("%T", err)
	metrics.DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	return ClassifyError(err)
}

func MeasureQueryDuration(operation, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(duration)
}
