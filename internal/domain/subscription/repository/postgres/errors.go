package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	suberrors "github.com/Conte777/MinaAlerts/internal/domain/subscription/errors"
	pkgerrors "github.com/Conte777/MinaAlerts/pkg/errors"
)

// classify maps driver errors onto the store error taxonomy.
// Errors that already carry a domain type pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if pkgerrors.TypeOf(err) != pkgerrors.ErrorTypeUnknown {
		return err
	}

	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", suberrors.ErrStoreUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %v", suberrors.ErrDuplicateSubscription, err)
	}

	return fmt.Errorf("%w: %v", suberrors.ErrQueryFailed, err)
}

func isUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.AdminShutdown,
			pgerrcode.CrashShutdown,
			pgerrcode.CannotConnectNow,
			pgerrcode.TooManyConnections,
			pgerrcode.SerializationFailure,
			pgerrcode.DeadlockDetected:
			return true
		}
		return pgerrcode.IsConnectionException(pgErr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
