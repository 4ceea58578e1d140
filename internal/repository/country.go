package repository

import (
	"context"

	"github.com/deppfellow/recipe-portal/internal/database"
	"github.com/deppfellow/recipe-portal/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const selectCountriesSQL = `SELECT id, name FROM countries ORDER BY name`

// CountryRepository lists the countries recipes can be tagged with.
type CountryRepository struct {
	db database.DBTX
}

func NewCountryRepository(db database.DBTX) *CountryRepository {
	return &CountryRepository{db: db}
}

// List returns every country ordered by name.
func (r *CountryRepository) List(ctx context.Context) ([]model.Country, error) {
	rows, err := r.db.Query(ctx, selectCountriesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "querying countries")
	}

	countries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Country, error) {
		var c model.Country
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "scanning countries")
	}

	return countries, nil
}
