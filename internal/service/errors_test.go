package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestPgErrCode(t *testing.T) {
	if got := pgErrCode(&pgconn.PgError{Code: "23505"}); got != "23505" {
		t.Errorf("pgconn code = %q, want 23505", got)
	}
	if got := pgErrCode(&pq.Error{Code: "23503"}); got != "23503" {
		t.Errorf("pq code = %q, want 23503", got)
	}
	if got := pgErrCode(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})); got != "23505" {
		t.Errorf("wrapped code = %q, want 23505", got)
	}
	if got := pgErrCode(errors.New("plain")); got != "" {
		t.Errorf("plain error code = %q, want empty", got)
	}
}

func TestIsUnavailable(t *testing.T) {
	if !IsUnavailable(context.DeadlineExceeded) {
		t.Error("deadline exceeded should be unavailable")
	}
	if !IsUnavailable(&net.OpError{Op: "dial", Err: errors.New("connection refused")}) {
		t.Error("dial failure should be unavailable")
	}
	if IsUnavailable(ErrVacationNotFound) {
		t.Error("domain errors are not unavailability")
	}
	if IsUnavailable(nil) {
		t.Error("nil is not unavailability")
	}
}
