package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepo(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) Create(ctx context.Context, name, code string) (*domain.Country, error) {
	const query = `
		INSERT INTO country (name, code)
		VALUES ($1, $2)
		RETURNING id, name, code, created_at
	`
	var country domain.Country
	if err := r.db.GetContext(ctx, &country, query, name, code); err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *CountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Country, error) {
	const query = `
		SELECT id, name, code, created_at
		FROM country
		WHERE id = $1
	`
	var country domain.Country
	if err := r.db.GetContext(ctx, &country, query, id); err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *CountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	const query = `
		SELECT id, name, code, created_at
		FROM country
		ORDER BY name ASC
	`
	countries := make([]domain.Country, 0)
	if err := r.db.SelectContext(ctx, &countries, query); err != nil {
		return nil, err
	}
	return countries, nil
}

var _ ports.CountryRepository = (*CountryRepository)(nil)
