package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/trackvers/trackvers/internal/client/config"
	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/localdata"
	"github.com/trackvers/trackvers/internal/client/stores"
)

// App wires the stores behind the REPL.
type App struct {
	config    *config.Config
	db        *sql.DB
	gw        gateway.Gateway
	session   *stores.SessionStore
	catalog   *stores.CatalogStore
	dashboard *stores.DashboardStore
	tutorial  *stores.TutorialStore
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, local, err := localdata.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	gw := gateway.NewHTTPGateway(c)
	session := stores.NewSessionStore(gw, local)
	catalog := stores.NewCatalogStore(gw, local, session)

	return &App{
		config:    c,
		db:        db,
		gw:        gw,
		session:   session,
		catalog:   catalog,
		dashboard: stores.NewDashboardStore(gw, session, catalog),
		tutorial:  stores.NewTutorialStore(local),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session, shows the first-run tutorial and hands over to
// the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.session.Init(ctx); err != nil {
		log.Printf("error restoring session: %s", err.Error())
	}
	if err := a.tutorial.Init(ctx); err != nil {
		log.Printf("error loading tutorial state: %s", err.Error())
	}

	if a.tutorial.Open() {
		a.runTutorial(ctx)
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}
