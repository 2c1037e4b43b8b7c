package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/roamly/vacations-api/internal/authz"
	"github.com/roamly/vacations-api/internal/cache"
	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

const (
	popularCacheKey = "vacations:popular"

	// popularCacheSize is the number of rows cached under popularCacheKey;
	// Popular slices smaller limits out of the same entry.
	popularCacheSize = 50
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type VacationService struct {
	vacations ports.VacationRepository
	countries ports.CountryRepository
	storage   ports.ObjectStorage
	cache     *cache.Cache

	bucket        string
	imageMaxBytes int64
	cacheTTL      time.Duration
}

type VacationServiceConfig struct {
	Bucket        string
	ImageMaxBytes int64
	CacheTTL      time.Duration
}

func NewVacationService(
	vacationRepo ports.VacationRepository,
	countryRepo ports.CountryRepository,
	storage ports.ObjectStorage,
	c *cache.Cache,
	cfg VacationServiceConfig,
) *VacationService {
	if cfg.ImageMaxBytes <= 0 {
		cfg.ImageMaxBytes = 5 << 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &VacationService{
		vacations:     vacationRepo,
		countries:     countryRepo,
		storage:       storage,
		cache:         c,
		bucket:        cfg.Bucket,
		imageMaxBytes: cfg.ImageMaxBytes,
		cacheTTL:      cfg.CacheTTL,
	}
}

type VacationInput struct {
	CountryID   uuid.UUID
	Destination string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Price       domain.Money
}

type VacationListResult struct {
	Items  []domain.VacationListItem
	Total  int64
	Limit  int
	Offset int
}

func (s *VacationService) Create(ctx context.Context, actor *domain.User, input VacationInput) (*domain.Vacation, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpCreateVacation) {
		return nil, ErrForbidden
	}
	if err := validateVacationInput(&input); err != nil {
		return nil, err
	}

	vacation, err := s.vacations.Create(ctx, &domain.Vacation{
		CountryID:   input.CountryID,
		Destination: input.Destination,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Price:       input.Price,
	})
	if err != nil {
		switch {
		case isNotFound(err), isForeignKeyViolation(err):
			return nil, ErrCountryNotFound
		case isUniqueViolation(err):
			return nil, ErrVacationAlreadyExists
		default:
			return nil, err
		}
	}

	s.invalidatePopular(ctx)
	return vacation, nil
}

func (s *VacationService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input VacationInput) (*domain.Vacation, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpUpdateVacation) {
		return nil, ErrForbidden
	}
	if err := validateVacationInput(&input); err != nil {
		return nil, err
	}

	if _, err := s.countries.FindByID(ctx, input.CountryID); err != nil {
		if isNotFound(err) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}

	vacation, err := s.vacations.Update(ctx, &domain.Vacation{
		ID:          id,
		CountryID:   input.CountryID,
		Destination: input.Destination,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Price:       input.Price,
	})
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrVacationNotFound
		case isForeignKeyViolation(err):
			return nil, ErrCountryNotFound
		case isUniqueViolation(err):
			return nil, ErrVacationAlreadyExists
		default:
			return nil, err
		}
	}

	s.invalidatePopular(ctx)
	return vacation, nil
}

// Delete refuses to remove a vacation that users have liked; the likes
// must disappear first. The check and the delete are one statement, so
// a like landing mid-delete cannot be orphaned.
func (s *VacationService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if actor == nil || !authz.Can(actor.Role, authz.OpDeleteVacation) {
		return ErrForbidden
	}

	deleted, hadLikes, err := s.vacations.DeleteIfUnliked(ctx, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrVacationHasLikes
		}
		return err
	}
	if hadLikes {
		return ErrVacationHasLikes
	}
	if !deleted {
		return ErrVacationNotFound
	}

	s.invalidatePopular(ctx)
	return nil
}

func (s *VacationService) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Vacation, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpGetVacation) {
		return nil, ErrForbidden
	}
	vacation, err := s.vacations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}
	return vacation, nil
}

func (s *VacationService) List(ctx context.Context, actor *domain.User, filter domain.VacationListFilter, limit, offset int) (*VacationListResult, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpListVacations) {
		return nil, ErrForbidden
	}
	if err := validateListFilter(&filter); err != nil {
		return nil, err
	}

	nLimit, nOffset := normalizePagination(limit, offset)
	items, err := s.vacations.List(ctx, filter, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	total, err := s.vacations.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &VacationListResult{Items: items, Total: total, Limit: nLimit, Offset: nOffset}, nil
}

// Popular returns vacations ordered by like count. The ranking is served
// cache-aside; a few minutes of staleness is acceptable here.
func (s *VacationService) Popular(ctx context.Context, actor *domain.User, limit int) ([]domain.VacationListItem, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpListVacations) {
		return nil, ErrForbidden
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > popularCacheSize {
		limit = popularCacheSize
	}

	var items []domain.VacationListItem
	err := s.cache.Aside(ctx, popularCacheKey, &items, s.cacheTTL, func() error {
		fetched, err := s.vacations.Popular(ctx, popularCacheSize)
		if err != nil {
			return err
		}
		items = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *VacationService) UploadImage(ctx context.Context, actor *domain.User, id uuid.UUID, contentType string, reader io.Reader, size int64) (*domain.Vacation, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpUploadVacationImg) {
		return nil, ErrForbidden
	}
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	ext, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image content type %q", ErrValidation, contentType)
	}
	if size <= 0 || size > s.imageMaxBytes {
		return nil, fmt.Errorf("%w: image size must be between 1 and %d bytes", ErrValidation, s.imageMaxBytes)
	}

	if _, err := s.vacations.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}

	objectName := path.Join("vacations", id.String(), uuid.NewString()+ext)
	url, err := s.storage.Upload(ctx, s.bucket, objectName, contentType, reader, size)
	if err != nil {
		return nil, err
	}

	vacation, err := s.vacations.SetImageURL(ctx, id, url)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}

	s.invalidatePopular(ctx)
	return vacation, nil
}

func (s *VacationService) invalidatePopular(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, popularCacheKey)
}

func validateVacationInput(input *VacationInput) error {
	input.Destination = strings.TrimSpace(input.Destination)
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			input.Description = nil
		} else {
			input.Description = &trimmed
		}
	}

	var merr *multierror.Error
	if input.CountryID == uuid.Nil {
		merr = multierror.Append(merr, fmt.Errorf("country_id is required"))
	}
	if len(input.Destination) < 3 {
		merr = multierror.Append(merr, fmt.Errorf("destination must be at least 3 characters"))
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		merr = multierror.Append(merr, fmt.Errorf("start_date and end_date are required"))
	} else if input.EndDate.Before(input.StartDate) {
		merr = multierror.Append(merr, fmt.Errorf("end_date must not precede start_date"))
	}
	if input.Price < 0 {
		merr = multierror.Append(merr, fmt.Errorf("price must not be negative"))
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return nil
}

func validateListFilter(filter *domain.VacationListFilter) error {
	if filter.Query != nil {
		trimmed := strings.TrimSpace(*filter.Query)
		if trimmed == "" {
			filter.Query = nil
		} else {
			filter.Query = &trimmed
		}
	}

	var merr *multierror.Error
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		merr = multierror.Append(merr, fmt.Errorf("min_price must not be negative"))
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		merr = multierror.Append(merr, fmt.Errorf("max_price must not be negative"))
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MaxPrice < *filter.MinPrice {
		merr = multierror.Append(merr, fmt.Errorf("max_price must not be below min_price"))
	}
	if filter.StartFrom != nil && filter.StartTo != nil && filter.StartTo.Before(*filter.StartFrom) {
		merr = multierror.Append(merr, fmt.Errorf("start_to must not precede start_from"))
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return nil
}
