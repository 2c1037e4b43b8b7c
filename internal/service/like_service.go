package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roamly/vacations-api/internal/authz"
	"github.com/roamly/vacations-api/internal/cache"
	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

type LikeService struct {
	likes     ports.LikeRepository
	vacations ports.VacationRepository
	cache     *cache.Cache
	countTTL  time.Duration
}

func NewLikeService(likeRepo ports.LikeRepository, vacationRepo ports.VacationRepository, c *cache.Cache, countTTL time.Duration) *LikeService {
	if countTTL <= 0 {
		countTTL = time.Minute
	}
	return &LikeService{
		likes:     likeRepo,
		vacations: vacationRepo,
		cache:     c,
		countTTL:  countTTL,
	}
}

type LikeResult struct {
	Like    *domain.Like
	Created bool
}

// Like records the user's like. Liking an already-liked vacation is a
// success that reports Created=false; concurrent calls for the same pair
// collapse to a single row at the unique constraint.
func (s *LikeService) Like(ctx context.Context, actor *domain.User, vacationID uuid.UUID) (*LikeResult, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpLikeVacation) {
		return nil, ErrForbidden
	}

	if _, err := s.vacations.FindByID(ctx, vacationID); err != nil {
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}

	like, created, err := s.likes.Add(ctx, actor.ID, vacationID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}

	if created {
		s.invalidateCount(ctx, vacationID)
	}
	return &LikeResult{Like: like, Created: created}, nil
}

// Unlike removes the like if present. Removed reports whether a row
// actually went away; unliking twice is not an error.
func (s *LikeService) Unlike(ctx context.Context, actor *domain.User, vacationID uuid.UUID) (bool, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpUnlikeVacation) {
		return false, ErrForbidden
	}

	if _, err := s.vacations.FindByID(ctx, vacationID); err != nil {
		if isNotFound(err) {
			return false, ErrVacationNotFound
		}
		return false, err
	}

	removed, err := s.likes.Remove(ctx, actor.ID, vacationID)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidateCount(ctx, vacationID)
	}
	return removed, nil
}

type LikedVacationListResult struct {
	Items  []domain.LikedVacation
	Total  int64
	Limit  int
	Offset int
}

func (s *LikeService) ListOwn(ctx context.Context, actor *domain.User, limit, offset int) (*LikedVacationListResult, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpListOwnLikes) {
		return nil, ErrForbidden
	}

	nLimit, nOffset := normalizePagination(limit, offset)
	items, err := s.likes.ListByUser(ctx, actor.ID, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	total, err := s.likes.CountByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return &LikedVacationListResult{Items: items, Total: total, Limit: nLimit, Offset: nOffset}, nil
}

type LikerListResult struct {
	Items  []domain.Liker
	Total  int64
	Limit  int
	Offset int
}

// ListForVacation is the admin view of who liked a vacation.
func (s *LikeService) ListForVacation(ctx context.Context, actor *domain.User, vacationID uuid.UUID, limit, offset int) (*LikerListResult, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpListVacationLikes) {
		return nil, ErrForbidden
	}

	if _, err := s.vacations.FindByID(ctx, vacationID); err != nil {
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}

	nLimit, nOffset := normalizePagination(limit, offset)
	items, err := s.likes.ListByVacation(ctx, vacationID, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	total, err := s.likes.CountByVacation(ctx, vacationID)
	if err != nil {
		return nil, err
	}
	return &LikerListResult{Items: items, Total: total, Limit: nLimit, Offset: nOffset}, nil
}

// Count is public: anyone can see how liked a vacation is.
func (s *LikeService) Count(ctx context.Context, vacationID uuid.UUID) (int64, error) {
	if _, err := s.vacations.FindByID(ctx, vacationID); err != nil {
		if isNotFound(err) {
			return 0, ErrVacationNotFound
		}
		return 0, err
	}

	var count int64
	err := s.cache.Aside(ctx, likeCountKey(vacationID), &count, s.countTTL, func() error {
		fetched, err := s.likes.CountByVacation(ctx, vacationID)
		if err != nil {
			return err
		}
		count = fetched
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *LikeService) invalidateCount(ctx context.Context, vacationID uuid.UUID) {
	_ = s.cache.Invalidate(ctx, likeCountKey(vacationID), popularCacheKey)
}

func likeCountKey(vacationID uuid.UUID) string {
	return fmt.Sprintf("vacation:%s:like_count", vacationID)
}
