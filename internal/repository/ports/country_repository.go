package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roamly/vacations-api/internal/domain"
)

type CountryRepository interface {
	Create(ctx context.Context, name, code string) (*domain.Country, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Country, error)
	List(ctx context.Context) ([]domain.Country, error)
}
