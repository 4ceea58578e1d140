package repository

import (
	"github.com/deppfellow/recipe-portal/internal/database"
	"github.com/deppfellow/recipe-portal/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Recipes   *RecipeRepository
	Countries *CountryRepository
}

// NewRepositories builds the repositories on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithStore(s.DB.Pool)
}

// NewRepositoriesWithStore builds the repositories on top of any Store,
// which lets tests substitute a mocked pool.
func NewRepositoriesWithStore(db database.Store) *Repositories {
	return &Repositories{
		Recipes:   NewRecipeRepository(db),
		Countries: NewCountryRepository(db),
	}
}
