package router

import (
	"net/http"

	"github.com/deppfellow/recipe-portal/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerRecipeRoutes(g *echo.Group, h *handler.Handlers) {
	recipes := g.Group("/recipes")

	recipes.GET("", handler.Handle(h.Recipes.Handler, h.Recipes.ListRecipes, http.StatusOK, &handler.ListRecipesRequest{}))
	recipes.GET("/:id", handler.Handle(h.Recipes.Handler, h.Recipes.GetRecipe, http.StatusOK, &handler.GetRecipeRequest{}))
	recipes.POST("", handler.Handle(h.Recipes.Handler, h.Recipes.CreateRecipe, http.StatusCreated, &handler.CreateRecipeRequest{}))
}

func registerCountryRoutes(g *echo.Group, h *handler.Handlers) {
	g.GET("/countries", handler.Handle(h.Countries.Handler, h.Countries.ListCountries, http.StatusOK, &handler.ListCountriesRequest{}))
}
