package routes

import (
	"strings"
	"time"

	"toolshare/config"
	"toolshare/handlers"
	"toolshare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)
		api.POST("/refresh", hb.User.RefreshTokenHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.AuthCache))
		protected.POST("/logout", hb.User.LogoutHandler)
		protected.GET("/me", hb.User.MeHandler)
		protected.PUT("/profile", hb.User.UpdateProfileHandler)
		protected.PUT("/password", hb.User.UpdatePasswordHandler)
		protected.PUT("/profile-photo", hb.User.UploadAvatarHandler)
	}
}

// RegisterToolRoutes registers listing endpoints. Browsing is public.
func RegisterToolRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tools")
	{
		auth := middleware.JWTAuthUserMiddleware(hb.AuthCache)

		api.GET("", hb.Tool.SearchToolsHandler)
		api.GET("/my", auth, hb.Tool.MyToolsHandler)
		api.GET("/:id", hb.Tool.GetToolHandler)
		api.GET("/:id/availability", hb.Tool.AvailabilityHandler)

		api.POST("", auth, hb.Tool.CreateToolHandler)
		api.PUT("/:id", auth, hb.Tool.UpdateToolHandler)
		api.DELETE("/:id", auth, hb.Tool.DeleteToolHandler)
		api.PUT("/:id/blackouts", auth, hb.Tool.SetBlackoutsHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware(hb.AuthCache))
		bookingGroup.POST("", hb.Booking.CreateBookingHandler)
		bookingGroup.GET("/my", hb.Booking.MyBookingsHandler)
		bookingGroup.GET("/:id", hb.Booking.GetBookingHandler)
		bookingGroup.PUT("/:id/approve", hb.Booking.ApproveHandler())
		bookingGroup.PUT("/:id/decline", hb.Booking.DeclineHandler())
		bookingGroup.PUT("/:id/cancel", hb.Booking.CancelHandler())
		bookingGroup.PUT("/:id/return", hb.Booking.ReturnHandler())
		bookingGroup.GET("/:id/payment", hb.Booking.PaymentDetailsHandler)
		bookingGroup.POST("/:id/confirm-payment", hb.Booking.ConfirmPaymentHandler())
	}
}

// RegisterMessageRoutes registers the booking chat endpoints.
func RegisterMessageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/messages")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.AuthCache))
		api.POST("", hb.Message.SendMessageHandler)
		api.GET("/conversations", hb.Message.ConversationsHandler)
		api.GET("/booking/:bookingId", hb.Message.ListMessagesHandler)
		api.PUT("/booking/:bookingId/read", hb.Message.MarkReadHandler)
	}
}

// RegisterReviewRoutes registers review endpoints. Listing is public.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.POST("", middleware.JWTAuthUserMiddleware(hb.AuthCache), hb.Review.CreateReviewHandler)
		api.GET("/user/:userId", hb.Review.UserReviewsHandler)
		api.GET("/tool/:toolId", hb.Review.ToolReviewsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.AuthCache), middleware.AdminOnlyMiddleware(hb.UserRepo, hb.AuthCache))
		adminGroup.POST("/payments/reconcile", hb.Booking.ReconcilePaymentsHandler)
	}
}

// RegisterRealtimeRoutes registers the websocket stream. The token is checked by the handler itself.
func RegisterRealtimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws/bookings/:id", hb.Realtime.BookingStreamHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

func allowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(config.AppConfig.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := allowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	RegisterAuthRoutes(r, hb)
	RegisterToolRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterMessageRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterRealtimeRoutes(r, hb)
	RegisterHealthRoute(r)
}
