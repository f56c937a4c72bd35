package routes

import (
	"festoria/handlers"
	"festoria/middleware"
	"festoria/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle
// engine. Every party-driven endpoint requires an authenticated client or
// provider; system transitions live behind the callback secret.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.GET("/stats", bh.Stats)
		bookingGroup.GET("/:id", bh.GetBooking)
		bookingGroup.POST("", middleware.RequireRole(models.RoleClient), bh.CreateBooking)

		// Provider decisions on a pending request.
		bookingGroup.POST("/:id/confirm", middleware.RequireRole(models.RoleProvider), bh.Confirm)
		bookingGroup.POST("/:id/reject", middleware.RequireRole(models.RoleProvider), bh.Reject)
		bookingGroup.POST("/:id/modify", middleware.RequireRole(models.RoleProvider), bh.RequestModification)
		bookingGroup.POST("/:id/modify/respond", middleware.RequireRole(models.RoleClient), bh.RespondToModification)

		// Either party, subject to the engine's transition table.
		bookingGroup.POST("/:id/cancel", bh.Cancel)
		bookingGroup.POST("/:id/dispute", bh.RaiseDispute)

		// Service delivery is provider-driven.
		bookingGroup.POST("/:id/start", middleware.RequireRole(models.RoleProvider), bh.StartService)
		bookingGroup.POST("/:id/complete", middleware.RequireRole(models.RoleProvider), bh.CompleteService)
	}

	internalGroup := r.Group("/api/internal/bookings")
	{
		internalGroup.Use(middleware.CallbackAuthMiddleware())
		internalGroup.POST("/:id/dispute/resolve", bh.ResolveDispute)
	}
}

// RegisterPaymentRoutes sets up payment reconciliation endpoints.
func RegisterPaymentRoutes(r *gin.Engine, ph *handlers.PaymentHandler) {
	paymentGroup := r.Group("/api/payments")
	{
		paymentGroup.Use(middleware.JWTAuthMiddleware())
		paymentGroup.POST("/initiate", middleware.RequireRole(models.RoleClient), ph.InitiatePayment)
		paymentGroup.GET("/verify/:ref", ph.VerifyPayment)
	}

	// The gateway webhook authenticates with the shared callback secret, not
	// a user token.
	callbackGroup := r.Group("/api/payments/callback")
	{
		callbackGroup.Use(middleware.CallbackAuthMiddleware())
		callbackGroup.POST("", ph.GatewayCallback)
	}
}

// RegisterRatingRoutes sets up the internal endpoint the review subsystem
// pushes aggregate ratings through.
func RegisterRatingRoutes(r *gin.Engine, rh *handlers.RatingHandler) {
	ratingGroup := r.Group("/api/internal/ratings")
	{
		ratingGroup.Use(middleware.CallbackAuthMiddleware())
		ratingGroup.POST("", rh.ApplyBookingRating)
	}
}
