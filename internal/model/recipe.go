package model

// DietaryPreferenceAll is the filter sentinel meaning "no filter".
const DietaryPreferenceAll = "All"

// Recipe is a full recipe row.
type Recipe struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	Instructions      string  `json:"instructions"`
	PreparationTime   *int    `json:"preparation_time"`
	CookingTime       *int    `json:"cooking_time"`
	Servings          *int    `json:"servings"`
	ImageURL          *string `json:"image_url"`
	DietaryPreference string  `json:"dietary_preference"`
}

// RecipeSummary is one row of the recipe listing. Countries holds the
// matched country names joined with ", ", or nil when none matched.
type RecipeSummary struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	ImageURL          *string `json:"image_url"`
	DietaryPreference string  `json:"dietary_preference"`
	Countries         *string `json:"countries"`
}

// Ingredient is a quantity of something owned by exactly one recipe.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
}

// RecipeDetail is a recipe with its ingredients and country names.
type RecipeDetail struct {
	Recipe
	Ingredients []Ingredient `json:"ingredients"`
	Countries   []string     `json:"countries"`
}

// NewRecipe is the input of a recipe insert.
type NewRecipe struct {
	Name              string
	Description       *string
	Instructions      string
	PreparationTime   *int
	CookingTime       *int
	Servings          *int
	ImageURL          *string
	DietaryPreference string
	Ingredients       []Ingredient
	CountryIDs        []int64
}
