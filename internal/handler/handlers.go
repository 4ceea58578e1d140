// Package handler is the first layer after the router.
//
// It parses requests, validates input through the validation package, and
// calls the service layer. It is the only layer that knows about HTTP.
package handler

import (
	"github.com/deppfellow/recipe-portal/internal/server"
	"github.com/deppfellow/recipe-portal/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one value around.
type Handlers struct {
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
	Recipes   *RecipeHandler
	Countries *CountryHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Recipes:   NewRecipeHandler(s, services.Recipes),
		Countries: NewCountryHandler(s, services.Countries),
	}
}
