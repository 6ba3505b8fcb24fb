// Package app assembles repositories, services and handlers into the HTTP router.
package app

import (
	"net/http"

	"aura/internal/config"
	"aura/internal/middleware"
	"aura/internal/modules/admin"
	"aura/internal/modules/auth"
	"aura/internal/modules/booking"
	"aura/internal/modules/catalog"
	"aura/internal/modules/favorite"
	"aura/internal/modules/region"
	"aura/internal/modules/schedule"
	"aura/internal/notification"
	"aura/internal/pkg/codestore"
	"aura/internal/pkg/jwt"
	"aura/internal/pkg/logger"
	"aura/internal/pkg/mailer"
	"aura/internal/pkg/metrics"
	"aura/internal/pkg/storage"
	"aura/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the process-level collaborators. Metrics may be nil.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Log      *logger.Logger
	Tokens   *jwt.Service
	Codes    codestore.Store
	Mailer   mailer.Mailer
	Notifier notification.BookingNotifier
	Storage  storage.Storage
	Metrics  *metrics.Metrics
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	loc := cfg.Location()

	userRepo := repository.NewUserRepository(d.DB)
	refreshRepo := repository.NewRefreshTokenRepository(d.DB)
	regionRepo := repository.NewRegionRepository(d.DB)
	catalogRepo := repository.NewCatalogRepository(d.DB)
	favoriteRepo := repository.NewFavoriteRepository(d.DB)
	scheduleRepo := repository.NewScheduleRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	adminRepo := repository.NewAdminRepository(d.DB)

	authService := auth.NewService(
		userRepo, refreshRepo, regionRepo, d.Tokens, d.Codes, d.Mailer, d.Storage, d.Metrics,
		d.Log.With("module", "auth"),
		auth.Config{
			RefreshTTL:         cfg.Auth.RefreshTTL.Duration,
			ActivationTTL:      cfg.Auth.ActivationTTL.Duration,
			ResetTTL:           cfg.Auth.ResetTTL.Duration,
			RefreshTokenPepper: cfg.Auth.RefreshTokenPepper,
			CodePepper:         cfg.Auth.CodePepper,
		},
	)
	bookingService := booking.NewService(
		bookingRepo, catalogRepo, scheduleRepo, d.Notifier, d.Metrics,
		d.Log.With("module", "booking"), loc,
	)
	adminService := admin.NewService(
		regionRepo, catalogRepo, scheduleRepo, adminRepo, d.Storage,
		d.Log.With("module", "admin"), loc,
	)

	authHandler := auth.NewHandler(authService)
	regionHandler := region.NewHandler(region.NewService(regionRepo))
	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo, favoriteRepo, d.Storage))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo, catalogRepo))
	scheduleHandler := schedule.NewHandler(schedule.NewService(scheduleRepo))
	bookingHandler := booking.NewHandler(bookingService)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(middleware.CORS(cfg.HTTP.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(d.Metrics.Handler()))
	}
	if local, ok := d.Storage.(*storage.LocalStorage); ok {
		r.Static(cfg.Storage.URLBase, local.BaseDir())
	}

	v1 := r.Group("/api/v1")

	// public routes see the caller when a valid token is sent
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(d.Tokens))

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(d.Tokens))

	staff := v1.Group("/admin")
	staff.Use(middleware.JWTAuth(d.Tokens), middleware.StaffOnly())

	authHandler.RegisterRoutes(public, protected)
	regionHandler.RegisterRoutes(public)
	catalogHandler.RegisterRoutes(public, protected)
	favoriteHandler.RegisterRoutes(protected)
	scheduleHandler.RegisterRoutes(protected)
	bookingHandler.RegisterRoutes(public, protected)
	adminHandler.RegisterRoutes(staff)

	return r
}
