package db

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/javiermolinar/salonboard/internal/booking"
)

var (
	// ErrBuildQuery is returned when a SQL statement cannot be built.
	ErrBuildQuery = errors.New("db: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute.
	ErrExecQuery = errors.New("db: failed to execute query")

	// ErrScanRow is returned when a result row cannot be decoded.
	ErrScanRow = errors.New("db: failed to scan row")
)

// execError wraps a failed statement. Constraint violations also match
// booking.ErrConstraint.
func execError(op string, err error) error {
	if isConstraint(err) {
		return fmt.Errorf("%w: %s: %w: %v", ErrExecQuery, op, booking.ErrConstraint, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

func isConstraint(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code.Class() == "23" // integrity constraint violation
	}
	return false
}
