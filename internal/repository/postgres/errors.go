package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"chatfolio/internal/domain"
)

// isPgDuplicateError checks if error is a unique constraint violation
func isPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// isPgNoRowsError checks if error is a "no rows" error
func isPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isPgUnavailableError checks for connection-level failures: the store
// itself is unreachable rather than rejecting the statement.
func isPgUnavailableError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08 = connection exception, 57P03 = cannot_connect_now
		return strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "57P03"
	}
	return false
}

// classify wraps a repository error, tagging transient connection
// failures with domain.ErrUnavailable so callers can tell "retry later"
// apart from "bad request".
func classify(op string, err error) error {
	if isPgUnavailableError(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
