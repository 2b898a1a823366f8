// Package server initializes and runs the main application server: it opens
// the database, runs migrations, wires services onto the HTTP API, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/trackvers/trackvers/internal/logging"
	"github.com/trackvers/trackvers/internal/server/config"
	"github.com/trackvers/trackvers/internal/server/httpapi"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
	"github.com/trackvers/trackvers/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	userService := services.NewUserService(db, rm, cfg)
	catalogService := services.NewCatalogService(db, rm, cfg)
	trackingService := services.NewTrackingService(db, rm)
	favoritesService := services.NewFavoritesService(db, rm)
	profileService := services.NewProfileService(db, rm)
	eolService := services.NewEOLService(db, rm)
	pushService := services.NewPushService(db, rm)
	checkService := services.NewVersionCheckService(db, rm, cfg, logger)

	handler := httpapi.NewHandler(
		userService, catalogService, trackingService, favoritesService,
		profileService, eolService, pushService, checkService, logger, cfg)

	server := httpapi.NewServer(cfg.EndpointAddrHTTP, handler, logger)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
