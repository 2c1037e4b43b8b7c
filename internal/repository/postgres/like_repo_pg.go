package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

type LikeRepository struct {
	db *sqlx.DB
}

func NewLikeRepo(db *sqlx.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Add relies on the (user_id, vacation_id) unique constraint for the
// concurrency guarantee: two racing inserts resolve to exactly one row,
// and the loser reads the winner's row back.
func (r *LikeRepository) Add(ctx context.Context, userID, vacationID uuid.UUID) (*domain.Like, bool, error) {
	const insert = `
		INSERT INTO vacation_like (user_id, vacation_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, vacation_id) DO NOTHING
		RETURNING id, user_id, vacation_id, created_at
	`
	var like domain.Like
	err := r.db.GetContext(ctx, &like, insert, userID, vacationID)
	if err == nil {
		return &like, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	const existing = `
		SELECT id, user_id, vacation_id, created_at
		FROM vacation_like
		WHERE user_id = $1 AND vacation_id = $2
	`
	if err := r.db.GetContext(ctx, &like, existing, userID, vacationID); err != nil {
		return nil, false, err
	}
	return &like, false, nil
}

func (r *LikeRepository) Remove(ctx context.Context, userID, vacationID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM vacation_like
		WHERE user_id = $1 AND vacation_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, vacationID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *LikeRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LikedVacation, error) {
	const query = `
		SELECT
			l.id AS like_id,
			l.created_at AS liked_at,
			v.id,
			v.country_id,
			c.name AS country_name,
			c.code AS country_code,
			v.destination,
			v.start_date,
			v.end_date,
			v.price,
			v.image_url
		FROM vacation_like l
		JOIN vacation v ON v.id = l.vacation_id
		JOIN country c ON c.id = v.country_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`
	items := make([]domain.LikedVacation, 0)
	if err := r.db.SelectContext(ctx, &items, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *LikeRepository) ListByVacation(ctx context.Context, vacationID uuid.UUID, limit, offset int) ([]domain.Liker, error) {
	const query = `
		SELECT
			l.id AS like_id,
			l.created_at AS liked_at,
			u.id AS user_id,
			u.first_name,
			u.last_name,
			u.email
		FROM vacation_like l
		JOIN user_account u ON u.id = l.user_id
		WHERE l.vacation_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`
	likers := make([]domain.Liker, 0)
	if err := r.db.SelectContext(ctx, &likers, query, vacationID, limit, offset); err != nil {
		return nil, err
	}
	return likers, nil
}

func (r *LikeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM vacation_like
		WHERE user_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LikeRepository) CountByVacation(ctx context.Context, vacationID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM vacation_like
		WHERE vacation_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, vacationID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.LikeRepository = (*LikeRepository)(nil)
