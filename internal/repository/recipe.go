package repository

import (
	"context"

	"github.com/deppfellow/recipe-portal/internal/database"
	"github.com/deppfellow/recipe-portal/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const (
	selectRecipeSQL = `
		SELECT id, name, description, instructions, preparation_time,
		       cooking_time, servings, image_url, dietary_preference
		FROM recipes
		WHERE id = $1`

	selectIngredientsSQL = `
		SELECT name, quantity, unit
		FROM ingredients
		WHERE recipe_id = $1`

	selectRecipeCountriesSQL = `
		SELECT c.name
		FROM countries c
		JOIN recipe_countries rc ON c.id = rc.country_id
		WHERE rc.recipe_id = $1`

	insertRecipeSQL = `
		INSERT INTO recipes (name, description, instructions, preparation_time,
		                     cooking_time, servings, image_url, dietary_preference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	insertIngredientSQL = `
		INSERT INTO ingredients (recipe_id, name, quantity, unit)
		VALUES ($1, $2, $3, $4)`

	insertRecipeCountrySQL = `
		INSERT INTO recipe_countries (recipe_id, country_id)
		VALUES ($1, $2)`
)

// RecipeRepository reads and writes recipes with their ingredients and
// country associations.
type RecipeRepository struct {
	db database.Store
}

func NewRecipeRepository(db database.Store) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns recipe summaries matching f, ordered by name.
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilter) ([]model.RecipeSummary, error) {
	query, args, err := BuildRecipeListQuery(f)
	if err != nil {
		return nil, errors.Wrap(err, "building recipe list query")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying recipes")
	}

	recipes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.RecipeSummary, error) {
		var s model.RecipeSummary
		err := row.Scan(&s.ID, &s.Name, &s.Description, &s.ImageURL, &s.DietaryPreference, &s.Countries)
		return s, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "scanning recipes")
	}

	return recipes, nil
}

// GetByID returns the recipe with its ingredients and country names.
//
// When no recipe has the id, ErrNotFound is returned and the child tables
// are not queried. Ingredient and country order is whatever the store
// returns.
func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*model.RecipeDetail, error) {
	var detail model.RecipeDetail

	err := r.db.QueryRow(ctx, selectRecipeSQL, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.Instructions,
		&detail.PreparationTime,
		&detail.CookingTime,
		&detail.Servings,
		&detail.ImageURL,
		&detail.DietaryPreference,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.WithMessagef(ErrNotFound, "recipe %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "querying recipe %d", id)
	}

	detail.Ingredients, err = r.listIngredients(ctx, id)
	if err != nil {
		return nil, err
	}

	detail.Countries, err = r.listCountryNames(ctx, id)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *RecipeRepository) listIngredients(ctx context.Context, recipeID int64) ([]model.Ingredient, error) {
	rows, err := r.db.Query(ctx, selectIngredientsSQL, recipeID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying ingredients of recipe %d", recipeID)
	}

	ingredients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Ingredient, error) {
		var i model.Ingredient
		err := row.Scan(&i.Name, &i.Quantity, &i.Unit)
		return i, err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning ingredients of recipe %d", recipeID)
	}

	return ingredients, nil
}

func (r *RecipeRepository) listCountryNames(ctx context.Context, recipeID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, selectRecipeCountriesSQL, recipeID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying countries of recipe %d", recipeID)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrapf(err, "scanning countries of recipe %d", recipeID)
	}

	return names, nil
}

// Create inserts the recipe, its named ingredients and its country links in
// one transaction and returns the new recipe id.
//
// Ingredients without a name are skipped. Country ids are not checked
// beforehand; a foreign key violation aborts the whole insert. On any
// failure nothing is left behind.
func (r *RecipeRepository) Create(ctx context.Context, in model.NewRecipe) (int64, error) {
	var recipeID int64

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertRecipeSQL,
			in.Name,
			in.Description,
			in.Instructions,
			in.PreparationTime,
			in.CookingTime,
			in.Servings,
			in.ImageURL,
			in.DietaryPreference,
		).Scan(&recipeID)
		if err != nil {
			return errors.Wrap(err, "inserting recipe")
		}

		for _, ingredient := range in.Ingredients {
			if ingredient.Name == "" {
				continue
			}

			if _, err := tx.Exec(ctx, insertIngredientSQL, recipeID, ingredient.Name, ingredient.Quantity, ingredient.Unit); err != nil {
				return errors.Wrapf(err, "inserting ingredient %q", ingredient.Name)
			}
		}

		for _, countryID := range in.CountryIDs {
			if _, err := tx.Exec(ctx, insertRecipeCountrySQL, recipeID, countryID); err != nil {
				return errors.Wrapf(err, "linking country %d", countryID)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return recipeID, nil
}
