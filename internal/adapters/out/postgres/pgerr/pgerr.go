// Package pgerr translates driver errors into the errs taxonomy so the core
// never inspects Postgres codes.
package pgerr

import (
	"context"
	"errors"
	"net"

	"laundry/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// Translate maps a unique violation to errs.ErrConflict, a missing row to
// errs.ErrObjectNotFound and connection-level failures to errs.ErrUnavailable.
// Anything else is returned unchanged.
func Translate(resource string, id any, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(resource, id, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewConflictErrorWithCause(resource, err)
	}

	if IsConnectionError(err) {
		return errs.NewUnavailableError(resource, err)
	}

	return err
}

// IsConnectionError reports whether err means the database could not be reached.
func IsConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded)
}
