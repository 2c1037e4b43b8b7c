package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/roamly/vacations-api/internal/domain"
)

type LikeRepository interface {
	// Add inserts the (user, vacation) like if absent and returns the
	// surviving row either way. inserted reports whether this call created it.
	Add(ctx context.Context, userID, vacationID uuid.UUID) (like *domain.Like, inserted bool, err error)
	// Remove deletes the like if present. removed is false when there was
	// nothing to remove; that is not an error.
	Remove(ctx context.Context, userID, vacationID uuid.UUID) (removed bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LikedVacation, error)
	ListByVacation(ctx context.Context, vacationID uuid.UUID, limit, offset int) ([]domain.Liker, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByVacation(ctx context.Context, vacationID uuid.UUID) (int64, error)
}
