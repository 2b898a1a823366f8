// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/trackvers/trackvers/internal/dbx"
	"github.com/trackvers/trackvers/internal/server/migrations"
	"github.com/trackvers/trackvers/internal/server/repositories/eoldates"
	"github.com/trackvers/trackvers/internal/server/repositories/favorites"
	"github.com/trackvers/trackvers/internal/server/repositories/profiles"
	"github.com/trackvers/trackvers/internal/server/repositories/pushsubs"
	"github.com/trackvers/trackvers/internal/server/repositories/refreshtokens"
	"github.com/trackvers/trackvers/internal/server/repositories/software"
	"github.com/trackvers/trackvers/internal/server/repositories/users"
	"github.com/trackvers/trackvers/internal/server/repositories/versions"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Software(db dbx.DBTX) software.Repository {
	return software.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Versions(db dbx.DBTX) versions.Repository {
	return versions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Favorites(db dbx.DBTX) favorites.Repository {
	return favorites.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) EOLDates(db dbx.DBTX) eoldates.Repository {
	return eoldates.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) PushSubscriptions(db dbx.DBTX) pushsubs.Repository {
	return pushsubs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
