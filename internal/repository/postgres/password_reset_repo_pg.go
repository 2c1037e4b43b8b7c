package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

type PasswordResetRepository struct {
	db *sqlx.DB
}

func NewPasswordResetRepo(db *sqlx.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	const query = `
		INSERT INTO password_resets (user_id, otp_hash, otp_salt, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, otp_hash, otp_salt, expires_at, consumed, created_at
	`
	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, userID, otpHash, otpSalt, expiresAt); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.PasswordReset, error) {
	const query = `
		SELECT id, user_id, otp_hash, otp_salt, expires_at, consumed, created_at
		FROM password_resets
		WHERE user_id = $1 AND consumed = FALSE AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, userID, now); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) MarkConsumed(ctx context.Context, id int64) error {
	const query = `
		UPDATE password_resets
		SET consumed = TRUE
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ConsumeByUser retires every outstanding challenge for the user, so a
// fresh request invalidates any code mailed earlier.
func (r *PasswordResetRepository) ConsumeByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
		UPDATE password_resets
		SET consumed = TRUE
		WHERE user_id = $1 AND consumed = FALSE
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

var _ ports.PasswordResetRepository = (*PasswordResetRepository)(nil)
