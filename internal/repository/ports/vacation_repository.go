package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roamly/vacations-api/internal/domain"
)

type VacationRepository interface {
	Create(ctx context.Context, v *domain.Vacation) (*domain.Vacation, error)
	Update(ctx context.Context, v *domain.Vacation) (*domain.Vacation, error)
	// DeleteIfUnliked removes the vacation only when no likes reference it.
	// It reports (deleted, hadLikes).
	DeleteIfUnliked(ctx context.Context, id uuid.UUID) (bool, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Vacation, error)
	List(ctx context.Context, filter domain.VacationListFilter, limit, offset int) ([]domain.VacationListItem, error)
	Count(ctx context.Context, filter domain.VacationListFilter) (int64, error)
	Popular(ctx context.Context, limit int) ([]domain.VacationListItem, error)
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*domain.Vacation, error)
}
