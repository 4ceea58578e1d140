package handler

import (
	"github.com/deppfellow/recipe-portal/internal/model"
	"github.com/deppfellow/recipe-portal/internal/repository"
	"github.com/deppfellow/recipe-portal/internal/server"
	"github.com/deppfellow/recipe-portal/internal/service"
	"github.com/deppfellow/recipe-portal/internal/validation"
	"github.com/labstack/echo/v4"
)

// MsgRecipeCreated is the confirmation returned with a new recipe id.
const MsgRecipeCreated = "Recipe added successfully"

type RecipeHandler struct {
	Handler
	recipes *service.RecipeService
}

func NewRecipeHandler(s *server.Server, recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		Handler: NewHandler(s),
		recipes: recipes,
	}
}

// ListRecipesRequest filters the listing. Empty or "All" disables a filter.
type ListRecipesRequest struct {
	Country           string `query:"country"`
	DietaryPreference string `query:"dietary_preference"`
}

func (r *ListRecipesRequest) Validate() error {
	return validation.Struct(r)
}

type GetRecipeRequest struct {
	ID int64 `param:"id"`
}

func (r *GetRecipeRequest) Validate() error {
	return validation.Struct(r)
}

type IngredientRequest struct {
	Name     string  `json:"name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
}

type CreateRecipeRequest struct {
	Name              string              `json:"name" validate:"required"`
	Description       *string             `json:"description"`
	Instructions      string              `json:"instructions" validate:"required"`
	PreparationTime   *int                `json:"preparation_time"`
	CookingTime       *int                `json:"cooking_time"`
	Servings          *int                `json:"servings"`
	ImageURL          *string             `json:"image_url"`
	DietaryPreference string              `json:"dietary_preference" validate:"required"`
	Ingredients       []IngredientRequest `json:"ingredients"`
	CountryIDs        []int64             `json:"country_ids"`
}

func (r *CreateRecipeRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateRecipeRequest) toModel() model.NewRecipe {
	ingredients := make([]model.Ingredient, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredients = append(ingredients, model.Ingredient{
			Name:     i.Name,
			Quantity: i.Quantity,
			Unit:     i.Unit,
		})
	}

	return model.NewRecipe{
		Name:              r.Name,
		Description:       r.Description,
		Instructions:      r.Instructions,
		PreparationTime:   r.PreparationTime,
		CookingTime:       r.CookingTime,
		Servings:          r.Servings,
		ImageURL:          r.ImageURL,
		DietaryPreference: r.DietaryPreference,
		Ingredients:       ingredients,
		CountryIDs:        r.CountryIDs,
	}
}

type CreateRecipeResponse struct {
	Message  string `json:"message"`
	RecipeID int64  `json:"recipe_id"`
}

func (h *RecipeHandler) ListRecipes(c echo.Context, req *ListRecipesRequest) ([]model.RecipeSummary, error) {
	return h.recipes.ListRecipes(c.Request().Context(), repository.RecipeFilter{
		Country:           req.Country,
		DietaryPreference: req.DietaryPreference,
	})
}

func (h *RecipeHandler) GetRecipe(c echo.Context, req *GetRecipeRequest) (*model.RecipeDetail, error) {
	return h.recipes.GetRecipe(c.Request().Context(), req.ID)
}

func (h *RecipeHandler) CreateRecipe(c echo.Context, req *CreateRecipeRequest) (*CreateRecipeResponse, error) {
	id, err := h.recipes.CreateRecipe(c.Request().Context(), req.toModel())
	if err != nil {
		return nil, err
	}

	return &CreateRecipeResponse{Message: MsgRecipeCreated, RecipeID: id}, nil
}
