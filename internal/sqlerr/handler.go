package sqlerr

import (
	"database/sql"
	"errors"
	"net"

	"github.com/deppfellow/recipe-portal/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	"github.com/rs/zerolog"
)

// MessageUnreachable is the client message for store-unreachable failures.
const MessageUnreachable = "Database connection failed"

// ErrCode returns the Code of err, or Other when err is not a database error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	return Other
}

// ConvertPgError copies the fields of a server-reported error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// IsUnreachable reports whether err means the store could not be reached:
// the connection could not be established, was dropped by the network, the
// pool was already closed, or the server refused new sessions.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}

	// pgxpool hands back puddle's sentinel when acquiring from a closed pool.
	if errors.Is(err, puddle.ErrClosedPool) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}

	switch ErrCode(err) {
	case ConnectionException, TooManyConnections, AdminShutdown:
		return true
	}

	return false
}

// HandleError maps a store error onto the error returned to clients.
//
//   - *errs.HTTPError values pass through untouched.
//   - missing rows become a 404.
//   - unreachable stores become a 500 with MessageUnreachable.
//   - anything else becomes a 500 carrying the generic message supplied by
//     the caller (e.g. "Failed to fetch recipes").
func HandleError(err error, message string) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return errs.NewNotFoundError("Resource not found", false, nil)
	case IsUnreachable(err):
		return errs.NewInternalServerErrorWithMessage(MessageUnreachable)
	}

	if message == "" {
		return errs.NewInternalServerError()
	}
	return errs.NewInternalServerErrorWithMessage(message)
}

// LogFields attaches database diagnostics of err to a log event.
func LogFields(e *zerolog.Event, err error) *zerolog.Event {
	e = e.Bool("db_unreachable", IsUnreachable(err))

	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return e
	}

	sqlErr := ConvertPgError(pgerr)

	e = e.Str("db_code", string(sqlErr.Code)).
		Str("db_sqlstate", sqlErr.DatabaseCode).
		Str("db_severity", string(sqlErr.Severity))

	if sqlErr.TableName != "" {
		e = e.Str("db_table", sqlErr.TableName)
	}
	if sqlErr.ColumnName != "" {
		e = e.Str("db_column", sqlErr.ColumnName)
	}
	if sqlErr.ConstraintName != "" {
		e = e.Str("db_constraint", sqlErr.ConstraintName)
	}

	return e
}
