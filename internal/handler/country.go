package handler

import (
	"github.com/deppfellow/recipe-portal/internal/model"
	"github.com/deppfellow/recipe-portal/internal/server"
	"github.com/deppfellow/recipe-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type CountryHandler struct {
	Handler
	countries *service.CountryService
}

func NewCountryHandler(s *server.Server, countries *service.CountryService) *CountryHandler {
	return &CountryHandler{
		Handler:   NewHandler(s),
		countries: countries,
	}
}

// ListCountriesRequest carries no input.
type ListCountriesRequest struct{}

func (r *ListCountriesRequest) Validate() error {
	return nil
}

func (h *CountryHandler) ListCountries(c echo.Context, _ *ListCountriesRequest) ([]model.Country, error) {
	return h.countries.ListCountries(c.Request().Context())
}
