package service

import (
	"context"

	"github.com/deppfellow/recipe-portal/internal/model"
	"github.com/deppfellow/recipe-portal/internal/repository"
	"github.com/rs/zerolog"
)

type CountryService struct {
	countries *repository.CountryRepository
	log       *zerolog.Logger
}

func NewCountryService(countries *repository.CountryRepository, log *zerolog.Logger) *CountryService {
	return &CountryService{countries: countries, log: log}
}

func (s *CountryService) ListCountries(ctx context.Context) ([]model.Country, error) {
	countries, err := s.countries.List(ctx)
	if err != nil {
		return nil, storeFailure(ctx, s.log, err, "list_countries", MsgFetchCountries)
	}

	return countries, nil
}
