package routes

import (
	"net/http"
	"time"

	"nyumbani/handlers"
	"nyumbani/middleware"
	"nyumbani/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)

		// Protected routes.
		api.Use(middleware.JWTAuthMiddleware(hb.UserService))
		api.GET("/me", hb.User.MeHandler)
		api.PUT("/fcm-token", hb.User.UpdateFCMTokenHandler)
		api.DELETE("/logout", hb.User.LogoutHandler)
	}
}

// RegisterPropertyRoutes registers listing endpoints. Browsing is public;
// mutations require a property-manager account.
func RegisterPropertyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/properties")
	{
		api.GET("", hb.Property.ListHandler)
		api.GET("/:id", hb.Property.GetHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserService))
		protected.GET("/mine", middleware.RequireRoles(models.RolePropertyManager, models.RoleAdmin), hb.Property.MineHandler)
		protected.POST("", middleware.RequireRoles(models.RolePropertyManager, models.RoleAdmin), hb.Property.CreateHandler)
		protected.PATCH("/:id", hb.Property.UpdateHandler)
		protected.DELETE("/:id", hb.Property.DeleteHandler)
		protected.POST("/:id/images", hb.Property.UploadImageHandler)
	}
}

// RegisterBookingRoutes registers viewing-booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserService))
		api.POST("", hb.Booking.CreateHandler)
		api.GET("", hb.Booking.ListHandler)
		api.GET("/:id", hb.Booking.GetHandler)
		api.PATCH("/:id", hb.Booking.UpdateHandler)
		api.PUT("/:id/status", hb.Booking.SetStatusHandler)
	}
}

// RegisterGarbageRoutes registers garbage-collection endpoints.
func RegisterGarbageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/garbage")
	{
		api.GET("/companies", hb.Garbage.ListCompaniesHandler)
		api.GET("/companies/:id", hb.Garbage.GetCompanyHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserService))
		protected.POST("/companies", hb.Garbage.RegisterCompanyHandler)
		protected.PATCH("/companies/:id", hb.Garbage.UpdateCompanyHandler)
		protected.PUT("/companies/:id/verify", middleware.AdminOnly(), hb.Garbage.VerifyCompanyHandler)
		protected.POST("/companies/:id/documents", hb.Garbage.UploadDocumentHandler)

		protected.POST("/bookings", hb.Garbage.CreateBookingHandler)
		protected.GET("/bookings", hb.Garbage.ListBookingsHandler)
		protected.GET("/bookings/:id", hb.Garbage.GetBookingHandler)
		protected.PUT("/bookings/:id/status", hb.Garbage.SetBookingStatusHandler)
	}
}

// RegisterMoverRoutes registers moving-service endpoints.
func RegisterMoverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/movers")
	{
		api.GET("/companies", hb.Mover.ListCompaniesHandler)
		api.GET("/companies/:id", hb.Mover.GetCompanyHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserService))
		protected.POST("/companies", hb.Mover.RegisterCompanyHandler)
		protected.PATCH("/companies/:id", hb.Mover.UpdateCompanyHandler)
		protected.PUT("/companies/:id/verify", middleware.AdminOnly(), hb.Mover.VerifyCompanyHandler)
		protected.POST("/companies/:id/documents", hb.Mover.UploadDocumentHandler)

		protected.POST("/bookings", hb.Mover.CreateBookingHandler)
		protected.GET("/bookings", hb.Mover.ListBookingsHandler)
		protected.GET("/bookings/:id", hb.Mover.GetBookingHandler)
		protected.PUT("/bookings/:id/status", hb.Mover.SetBookingStatusHandler)
	}
}

// RegisterPaymentRoutes registers payment endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserService))
		api.GET("", hb.Payment.ListHandler)
		api.GET("/:id", hb.Payment.GetHandler)
		api.POST("/:id/process", hb.Payment.ProcessHandler)
		api.POST("/:id/refund", middleware.AdminOnly(), hb.Payment.RefundHandler)
		api.POST("/:id/pay-commission", middleware.AdminOnly(), hb.Payment.PayCommissionHandler)
	}
}

// RegisterContactRoutes registers the public contact form and the admin
// triage endpoints.
func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contact")
	{
		api.POST("", hb.Contact.SubmitHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.UserService), middleware.AdminOnly())
		admin.GET("", hb.Contact.ListHandler)
		admin.GET("/unread-count", hb.Contact.UnreadCountHandler)
		admin.GET("/:id", hb.Contact.GetHandler)
		admin.PUT("/:id/status", hb.Contact.SetStatusHandler)
		admin.DELETE("/:id", hb.Contact.DeleteHandler)
	}
}

// RegisterAdminRoutes registers admin endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserService), middleware.AdminOnly())
		api.GET("/users", hb.Admin.GetAllUsersHandler)
		api.DELETE("/users/:id", hb.Admin.DeleteUserHandler)
		api.GET("/settings", hb.Settings.GetHandler)
		api.PATCH("/settings", hb.Settings.UpdateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Nyumbani"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterGarbageRoutes(r, hb)
	RegisterMoverRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterContactRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
