package service

import (
	"github.com/deppfellow/recipe-portal/internal/repository"
	"github.com/deppfellow/recipe-portal/internal/server"
)

type Services struct {
	Recipes   *RecipeService
	Countries *CountryService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Recipes:   NewRecipeService(repos.Recipes, s.Logger),
		Countries: NewCountryService(repos.Countries, s.Logger),
	}, nil
}
