package repository

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/recipe-portal/internal/model"
)

// psql renders $n placeholders for PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// recipeSummaryColumns are the recipe columns selected by the listing and
// grouped on to collapse the country join fan-out.
var recipeSummaryColumns = []string{
	"r.id",
	"r.name",
	"r.description",
	"r.image_url",
	"r.dietary_preference",
}

const countriesAggregate = "STRING_AGG(DISTINCT c.name, ', ' ORDER BY c.name) AS countries"

// RecipeFilter narrows the recipe listing. An empty field, or the "All"
// sentinel, applies no predicate for that field.
type RecipeFilter struct {
	Country           string
	DietaryPreference string
}

func isActive(value, sentinel string) bool {
	return value != "" && value != sentinel
}

// HasCountry reports whether the country filter applies.
func (f RecipeFilter) HasCountry() bool {
	return isActive(f.Country, model.CountryAll)
}

// HasDietaryPreference reports whether the dietary preference filter applies.
func (f RecipeFilter) HasDietaryPreference() bool {
	return isActive(f.DietaryPreference, model.DietaryPreferenceAll)
}

// predicates returns one equality predicate per active filter.
func (f RecipeFilter) predicates() []sq.Sqlizer {
	var preds []sq.Sqlizer

	if f.HasCountry() {
		preds = append(preds, sq.Eq{"c.name": f.Country})
	}
	if f.HasDietaryPreference() {
		preds = append(preds, sq.Eq{"r.dietary_preference": f.DietaryPreference})
	}

	return preds
}

// BuildRecipeListQuery renders the recipe listing statement for f.
//
// Recipes are left-joined to their countries, matched country names are
// aggregated into one comma-separated column, active filters are ANDed as
// bound equality predicates, and rows are ordered by name.
func BuildRecipeListQuery(f RecipeFilter) (string, []any, error) {
	columns := append(append([]string{}, recipeSummaryColumns...), countriesAggregate)

	query := psql.
		Select(columns...).
		From("recipes r").
		LeftJoin("recipe_countries rc ON r.id = rc.recipe_id").
		LeftJoin("countries c ON rc.country_id = c.id")

	for _, pred := range f.predicates() {
		query = query.Where(pred)
	}

	return query.
		GroupBy(recipeSummaryColumns...).
		OrderBy("r.name").
		ToSql()
}
