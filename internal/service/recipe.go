package service

import (
	"context"

	"github.com/deppfellow/recipe-portal/internal/errs"
	"github.com/deppfellow/recipe-portal/internal/model"
	"github.com/deppfellow/recipe-portal/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type RecipeService struct {
	recipes *repository.RecipeRepository
	log     *zerolog.Logger
}

func NewRecipeService(recipes *repository.RecipeRepository, log *zerolog.Logger) *RecipeService {
	return &RecipeService{recipes: recipes, log: log}
}

// ListRecipes returns the recipe summaries matching f.
func (s *RecipeService) ListRecipes(ctx context.Context, f repository.RecipeFilter) ([]model.RecipeSummary, error) {
	recipes, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, storeFailure(ctx, s.log, err, "list_recipes", MsgFetchRecipes)
	}

	return recipes, nil
}

// GetRecipe returns one recipe with its ingredients and country names.
// A missing recipe is a 404; ingredient and country lists are never nil.
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*model.RecipeDetail, error) {
	detail, err := s.recipes.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(MsgRecipeNotFound, false, nil)
	}
	if err != nil {
		return nil, storeFailure(ctx, s.log, err, "get_recipe", MsgFetchRecipeDetail)
	}

	if detail.Ingredients == nil {
		detail.Ingredients = []model.Ingredient{}
	}
	if detail.Countries == nil {
		detail.Countries = []string{}
	}

	return detail, nil
}

// CreateRecipe stores in atomically and returns the new recipe id.
func (s *RecipeService) CreateRecipe(ctx context.Context, in model.NewRecipe) (int64, error) {
	id, err := s.recipes.Create(ctx, in)
	if err != nil {
		return 0, storeFailure(ctx, s.log, err, "create_recipe", MsgAddRecipe)
	}

	requestLogger(ctx, s.log).Info().
		Int64("recipe_id", id).
		Int("ingredients", len(in.Ingredients)).
		Int("countries", len(in.CountryIDs)).
		Msg("recipe created")

	return id, nil
}
