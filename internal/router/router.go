package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tidings-dev/tidings/internal/handlers"
	"github.com/tidings-dev/tidings/internal/middleware"
	"github.com/tidings-dev/tidings/pkg/logger"
)

func NewRouter(deps handlers.Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if deps.Log == nil {
		deps.Log = logger.Nop()
	}

	h := handlers.New(deps)
	authRequired := middleware.AuthMiddleware(deps.Signer)
	throttle := middleware.RateLimit(middleware.NewIPRateLimiter(deps.Config.Auth.RatePerMinute, deps.Config.Auth.RateBurst))

	r := gin.New()

	// ClientIP only honours forwarding headers set by these peers. With none
	// configured it is the socket address.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		deps.Log.Warn("http: ignoring trusted proxies", "err", err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Log),
		middleware.Recovery(deps.Log),
	)

	allowedOrigins := deps.Config.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{deps.Config.WebsiteURL}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		users := api.Group("/users")
		{
			users.POST("", throttle, h.RegisterUser)
			users.PUT("/update", authRequired, h.UpdateUser)
		}

		auth := api.Group("/auth")
		{
			auth.POST("", throttle, h.Login)
			auth.POST("/verify", authRequired, h.Verify)
			auth.POST("/logout", h.Logout)
		}

		announcements := api.Group("/announcements")
		{
			announcements.GET("", h.ListAnnouncements)
			announcements.GET("/own", authRequired, h.ListOwnAnnouncements)
			announcements.GET("/feed", h.AnnouncementFeed)
			announcements.GET("/:id", h.GetAnnouncement)
			announcements.GET("/:id/pdf", h.PrintAnnouncement)
			announcements.POST("", authRequired, h.CreateAnnouncement)
			announcements.PUT("/:id", authRequired, h.UpdateAnnouncement)
			announcements.DELETE("/:id", authRequired, h.DeleteAnnouncement)
		}

		api.GET("/cities", h.ListCities)

		organizations := api.Group("/organizations")
		{
			organizations.GET("", authRequired, h.ListOrganizations)
			organizations.POST("", throttle, h.RegisterOrganization)
		}
	}

	return r
}
