// Package httpapi exposes the TrackVers tables and callable functions as a
// JSON HTTP API consumed by the client gateway.
package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/trackvers/trackvers/internal/logging"
	"github.com/trackvers/trackvers/internal/server/config"
	"github.com/trackvers/trackvers/internal/server/services"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	users     *services.UserService
	catalog   *services.CatalogService
	tracking  *services.TrackingService
	favorites *services.FavoritesService
	profiles  *services.ProfileService
	eol       *services.EOLService
	push      *services.PushService
	checker   *services.VersionCheckService
	logger    logging.Logger
	cfg       *config.Config
}

func NewHandler(
	users *services.UserService,
	catalog *services.CatalogService,
	tracking *services.TrackingService,
	favorites *services.FavoritesService,
	profiles *services.ProfileService,
	eol *services.EOLService,
	push *services.PushService,
	checker *services.VersionCheckService,
	logger logging.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		users:     users,
		catalog:   catalog,
		tracking:  tracking,
		favorites: favorites,
		profiles:  profiles,
		eol:       eol,
		push:      push,
		checker:   checker,
		logger:    logger,
		cfg:       cfg,
	}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(h.logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/refresh", h.Refresh)
		v1.POST("/auth/logout", h.Logout)

		// the catalog is world-readable, favorites fall back to local
		// storage for anonymous visitors
		v1.GET("/software", h.ListSoftware)
		v1.GET("/eol", h.ListEOLDates)
		v1.GET("/config", h.ClientConfig)
	}

	authed := v1.Group("")
	authed.Use(Auth([]byte(h.cfg.SecretKey)))
	{
		authed.GET("/auth/session", h.Session)

		authed.GET("/tracked", h.ListTracked)
		authed.POST("/tracked", h.Track)
		authed.PUT("/tracked/:id", h.UpdateTrackedVersion)
		authed.DELETE("/tracked/:id", h.Untrack)
		authed.DELETE("/tracked", h.UntrackBySoftware)

		authed.GET("/favorites", h.ListFavorites)
		authed.PUT("/favorites/:softwareID", h.AddFavorite)
		authed.DELETE("/favorites/:softwareID", h.RemoveFavorite)

		authed.GET("/profile", h.GetProfile)
		authed.PUT("/profile", h.UpdateProfile)

		authed.POST("/push-subscriptions", h.SubscribePush)
		authed.DELETE("/push-subscriptions", h.UnsubscribePush)

		// the dashboard lets any signed-in user trigger a re-check of the
		// software it tracks, not only admins
		authed.POST("/functions/check-versions", h.CheckVersions)
	}

	admin := authed.Group("")
	admin.Use(AdminOnly())
	{
		admin.POST("/software", h.CreateSoftware)
		admin.PUT("/software/:id", h.UpdateSoftware)
		admin.DELETE("/software/:id", h.DeleteSoftware)
		admin.POST("/software/:id/logo-url", h.LogoUploadURL)

		admin.POST("/functions/create-admin-user", h.CreateAdminUser)
	}

	return r
}
