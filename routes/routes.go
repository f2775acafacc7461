package routes

import (
	"net/http"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/handlers"
	"github.com/sekharpasem/YouCanStyle-Api/middleware"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the assembled handlers for route registration.
type HandlerBundle struct {
	Booking      *handlers.BookingHandler
	Payment      *handlers.PaymentHandler
	Payout       *handlers.PayoutHandler
	Review       *handlers.ReviewHandler
	Stylist      *handlers.StylistHandler
	Notification *handlers.NotificationHandler
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole("client"), hb.Booking.CreateBooking)
		api.GET("/me", hb.Booking.ListMyBookings)
		api.GET("/stylist/:stylistId", middleware.RequireRole("stylist", "admin"), hb.Booking.ListStylistBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PATCH("/:id", hb.Booking.UpdateBooking)
		api.POST("/:id/cancel", hb.Booking.CancelBooking)
		api.POST("/:id/reschedule", hb.Booking.RescheduleBooking)

		// Session control is stylist-only; reviews are client-only.
		api.POST("/:id/no-show", middleware.RequireRole("stylist"), hb.Booking.MarkNoShow)
		api.POST("/:id/start", middleware.RequireRole("stylist"), hb.Booking.StartSession)
		api.POST("/:id/complete", middleware.RequireRole("stylist"), hb.Booking.CompleteSession)
		api.POST("/:id/review", middleware.RequireRole("client"), hb.Booking.AddReview)
	}
}

// RegisterPaymentRoutes sets up capture, refund and payment-method endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole("client"), hb.Payment.CreatePayment)
		api.GET("/me", hb.Payment.ListMyPayments)
		api.GET("/transactions/me", hb.Payment.ListMyTransactions)
		api.GET("/booking/:bookingId", hb.Payment.GetBookingPayment)
		api.GET("/:id", hb.Payment.GetPayment)
		api.POST("/:id/refund", middleware.RequireRole("admin"), hb.Payment.RefundPayment)
	}

	methods := r.Group("/api/payment-methods")
	{
		methods.Use(middleware.JWTAuthMiddleware())
		methods.POST("", hb.Payment.AddPaymentMethod)
		methods.GET("", hb.Payment.ListPaymentMethods)
		methods.DELETE("/:id", hb.Payment.DeletePaymentMethod)
		methods.PUT("/:id/default", hb.Payment.SetDefaultPaymentMethod)
	}
}

// RegisterPayoutRoutes sets up stylist withdrawal endpoints.
func RegisterPayoutRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payouts")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole("stylist"))
		api.POST("", hb.Payout.RequestPayout)
		api.GET("/me", hb.Payout.ListMyPayouts)
		api.GET("/statistics", hb.Payout.GetStatistics)
	}
}

// RegisterReviewRoutes sets up the direct review channel.
func RegisterReviewRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		// Reading a stylist's reviews is public.
		api.GET("/stylist/:stylistId", hb.Review.ListStylistReviews)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", middleware.RequireRole("client"), hb.Review.CreateReview)
		protected.DELETE("/:id", middleware.RequireRole("admin"), hb.Review.DeleteReview)
	}
}

// RegisterStylistRoutes sets up stylist profile and catalog endpoints.
func RegisterStylistRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/stylists")
	{
		api.GET("/:id", hb.Stylist.GetStylist)

		catalog := api.Group("/services")
		catalog.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole("stylist"))
		catalog.POST("", hb.Stylist.AddService)
		catalog.PUT("/:serviceId", hb.Stylist.UpdateService)
		catalog.DELETE("/:serviceId", hb.Stylist.DeactivateService)
	}
}

// RegisterNotificationRoutes sets up the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.Notification.ListMyNotifications)
		api.PUT("/:id/read", hb.Notification.MarkNotificationRead)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterPayoutRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterStylistRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
