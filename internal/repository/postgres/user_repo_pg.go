package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, firstName, lastName, email string, passwordHash, passwordSalt []byte, role domain.Role) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (first_name, last_name, email, password_hash, password_salt, role)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, first_name, last_name, email, password_hash, password_salt, role, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, firstName, lastName, email, passwordHash, passwordSalt, role)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, first_name, last_name, email, password_hash, password_salt, role, created_at, updated_at
        FROM user_account
        WHERE lower(email) = lower($1)
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT id, first_name, last_name, email, password_hash, password_salt, role, created_at, updated_at
        FROM user_account
        WHERE id = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            password_salt = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt)
	return err
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const query = `
        SELECT id, first_name, last_name, email, password_hash, password_salt, role, created_at, updated_at
        FROM user_account
        ORDER BY created_at ASC, id ASC
        LIMIT $1 OFFSET $2
    `
	users := make([]domain.User, 0)
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_account`); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
