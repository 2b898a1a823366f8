package repomanager

import (
	"context"
	"database/sql"

	"github.com/trackvers/trackvers/internal/dbx"
	"github.com/trackvers/trackvers/internal/server/repositories/eoldates"
	"github.com/trackvers/trackvers/internal/server/repositories/favorites"
	"github.com/trackvers/trackvers/internal/server/repositories/profiles"
	"github.com/trackvers/trackvers/internal/server/repositories/pushsubs"
	"github.com/trackvers/trackvers/internal/server/repositories/refreshtokens"
	"github.com/trackvers/trackvers/internal/server/repositories/software"
	"github.com/trackvers/trackvers/internal/server/repositories/users"
	"github.com/trackvers/trackvers/internal/server/repositories/versions"
)

// RepositoryManager vends table repositories bound to a DBTX so services can
// run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Software(db dbx.DBTX) software.Repository
	Versions(db dbx.DBTX) versions.Repository
	Favorites(db dbx.DBTX) favorites.Repository
	EOLDates(db dbx.DBTX) eoldates.Repository
	PushSubscriptions(db dbx.DBTX) pushsubs.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
