package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"travelgo/internal/config"
	h "travelgo/internal/http/handlers"
	"travelgo/internal/http/middleware"
	"travelgo/internal/mailer"

	"travelgo/internal/domain/models"
)

// NewRouter wires all routes against the injected pool, mailer and
// config. Gin mode is set by the caller.
func NewRouter(pool *sql.DB, mail mailer.Sender, env config.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	auth := middleware.Auth([]byte(env.JWTSecret))
	authOptional := middleware.AuthOptional([]byte(env.JWTSecret))
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	anyUser := middleware.RequireRoles(models.RoleAdmin, models.RoleTraveler)

	system := h.SystemHandler{DB: pool}
	authH := h.AuthHandler{DB: pool, Mail: mail, Env: env}
	bookings := h.BookingHandler{DB: pool, Mail: mail, FrontendURL: env.FrontendURL}
	packages := h.PackageHandler{DB: pool}
	requests := h.PackageRequestHandler{DB: pool, Mail: mail}
	travelers := h.TravelerHandler{DB: pool}
	agents := h.AgentHandler{DB: pool}
	admins := h.AdminHandler{DB: pool}
	locations := h.LocationHandler{DB: pool}

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", authH.Login)
		authGroup.GET("/me", auth, authH.Me)
		authGroup.POST("/change-password", auth, anyUser, authH.ChangePassword)
		authGroup.POST("/logout", auth, authH.Logout)

		bookingGroup := api.Group("/bookings")
		bookingGroup.POST("/submit", bookings.Submit)
		bookingGroup.GET("", auth, adminOnly, bookings.List)
		bookingGroup.GET("/stats", auth, adminOnly, bookings.Stats)
		bookingGroup.GET("/traveler/:travelerId", auth, anyUser, bookings.ListByTraveler)
		bookingGroup.GET("/:id", auth, anyUser, bookings.Get)
		bookingGroup.GET("/:id/voucher", auth, anyUser, bookings.Voucher)
		bookingGroup.PUT("/:id", auth, adminOnly, bookings.Update)
		bookingGroup.POST("/:id/confirm", auth, adminOnly, bookings.Confirm)
		bookingGroup.POST("/:id/cancel", auth, anyUser, bookings.Cancel)
		bookingGroup.PATCH("/:id/status", auth, adminOnly, bookings.PatchStatus)

		packageGroup := api.Group("/packages")
		packageGroup.GET("", authOptional, packages.List)
		packageGroup.GET("/:id", authOptional, packages.Get)
		packageGroup.POST("", auth, adminOnly, packages.Create)
		packageGroup.PUT("/:id", auth, adminOnly, packages.Update)
		packageGroup.DELETE("/:id", auth, adminOnly, packages.Delete)
		packageGroup.PUT("/:id/itinerary", auth, adminOnly, packages.ReplaceItinerary)
		packageGroup.POST("/:id/publish", auth, adminOnly, packages.Publish)
		packageGroup.POST("/:id/unpublish", auth, adminOnly, packages.Unpublish)
		packageGroup.POST("/:id/duplicate", auth, adminOnly, packages.Duplicate)

		requestGroup := api.Group("/package-requests")
		requestGroup.POST("", auth, middleware.RequireRoles(models.RoleTraveler), requests.Create)
		requestGroup.GET("", auth, adminOnly, requests.List)
		requestGroup.GET("/stats", auth, adminOnly, requests.Stats)
		requestGroup.GET("/traveler/:travelerId", auth, anyUser, requests.ListByTraveler)
		requestGroup.GET("/:id", auth, anyUser, requests.Get)
		requestGroup.GET("/:id/summary", auth, adminOnly, requests.SummaryPDF)
		requestGroup.PATCH("/:id/status", auth, adminOnly, requests.PatchStatus)
		requestGroup.POST("/:id/approve", auth, adminOnly, requests.Approve)
		requestGroup.POST("/:id/reject", auth, adminOnly, requests.Reject)

		travelerGroup := api.Group("/travelers")
		travelerGroup.GET("", auth, adminOnly, travelers.List)
		travelerGroup.GET("/:id", auth, anyUser, travelers.Get)
		travelerGroup.PUT("/:id", auth, anyUser, travelers.Update)
		travelerGroup.POST("/:id/activate", auth, adminOnly, travelers.Activate)
		travelerGroup.DELETE("/:id", auth, adminOnly, travelers.Delete)

		agentGroup := api.Group("/agents", auth, adminOnly)
		agentGroup.GET("", agents.List)
		agentGroup.GET("/:id", agents.Get)
		agentGroup.GET("/:id/stats", agents.Stats)
		agentGroup.POST("", agents.Create)
		agentGroup.PUT("/:id", agents.Update)
		agentGroup.DELETE("/:id", agents.Delete)

		adminGroup := api.Group("/admins", auth, adminOnly)
		adminGroup.GET("", admins.List)
		adminGroup.GET("/:id", admins.Get)
		adminGroup.POST("", admins.Create)
		adminGroup.PUT("/:id", admins.Update)
		adminGroup.DELETE("/:id", admins.Delete)

		locationGroup := api.Group("/locations")
		locationGroup.GET("", locations.List)
		locationGroup.GET("/:id", locations.Get)
		locationGroup.POST("", auth, adminOnly, locations.Create)
		locationGroup.PUT("/:id", auth, adminOnly, locations.Update)
		locationGroup.DELETE("/:id", auth, adminOnly, locations.Delete)
	}

	return r
}
