package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/roamly/vacations-api/internal/authz"
	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
)

type CountryService struct {
	countries ports.CountryRepository
}

func NewCountryService(countryRepo ports.CountryRepository) *CountryService {
	return &CountryService{countries: countryRepo}
}

func (s *CountryService) List(ctx context.Context, actor *domain.User) ([]domain.Country, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpListCountries) {
		return nil, ErrForbidden
	}
	return s.countries.List(ctx)
}

func (s *CountryService) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Country, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpGetCountry) {
		return nil, ErrForbidden
	}
	country, err := s.countries.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	return country, nil
}

func (s *CountryService) Create(ctx context.Context, actor *domain.User, name, code string) (*domain.Country, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpCreateCountry) {
		return nil, ErrForbidden
	}

	name = strings.TrimSpace(name)
	normalizedCode, codeErr := domain.NormalizeCountryCode(code)

	var merr *multierror.Error
	if name == "" {
		merr = multierror.Append(merr, fmt.Errorf("name is required"))
	}
	if codeErr != nil {
		merr = multierror.Append(merr, codeErr)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	country, err := s.countries.Create(ctx, name, normalizedCode)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCountryAlreadyExists
		}
		return nil, err
	}
	return country, nil
}
