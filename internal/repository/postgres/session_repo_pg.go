package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	const query = `
		INSERT INTO sessions (user_id, token, expires_at, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, user_id, token, created_at, expires_at, is_active
	`
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, userID, token, expiresAt); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) DeactivateSession(ctx context.Context, token string) error {
	const query = `
		UPDATE sessions
		SET is_active = FALSE
		WHERE token = $1
	`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

func (r *SessionRepository) FindActiveSession(ctx context.Context, token string) (*domain.Session, error) {
	const query = `
		SELECT id, user_id, token, created_at, expires_at, is_active
		FROM sessions
		WHERE token = $1 AND is_active = TRUE AND expires_at > now()
	`
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, token); err != nil {
		return nil, err
	}
	return &session, nil
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
