package database

import (
	"context"
	"embed"
	"io/fs"

	"github.com/deppfellow/recipe-portal/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Migrations are compiled into the binary so deployments need no SQL files.
//
//go:embed migrations/*.sql
var migrations embed.FS

// schemaVersionTable records the applied migration version.
const schemaVersionTable = "schema_version"

// Migrate brings the schema to the latest embedded version using jackc/tern.
// It uses a dedicated connection rather than the pool.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return errors.Wrap(err, "connecting for migrations")
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, schemaVersionTable)
	if err != nil {
		return errors.Wrap(err, "constructing database migrator")
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "retrieving database migrations subtree")
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return errors.Wrap(err, "loading database migrations")
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving current database migration version")
	}

	if err := m.Migrate(ctx); err != nil {
		return errors.Wrap(err, "applying database migrations")
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
