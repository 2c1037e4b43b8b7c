package service

import (
	"context"
	"database/sql"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrSessionExpired     = errors.New("session expired or revoked")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrValidation         = errors.New("validation failed")

	ErrUserNotFound     = errors.New("user not found")
	ErrCountryNotFound  = errors.New("country not found")
	ErrVacationNotFound = errors.New("vacation not found")
	ErrLikeNotFound     = errors.New("like not found")

	ErrCountryAlreadyExists  = errors.New("country name or code already in use")
	ErrVacationAlreadyExists = errors.New("an identical vacation already exists")
	ErrVacationHasLikes      = errors.New("vacation has likes and cannot be deleted")

	ErrResetCodeInvalid = errors.New("password reset code invalid or expired")
	ErrResetUnavailable = errors.New("password reset mail not configured")

	ErrStorageUnavailable = errors.New("object storage not configured")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUnavailable reports whether the error came from the store being
// unreachable rather than from the request itself. Callers may retry
// idempotent operations on it.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == "23505"
}

func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == "23503"
}

// pgErrCode extracts the SQLSTATE whether the error came through the pgx
// or the lib/pq driver.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
