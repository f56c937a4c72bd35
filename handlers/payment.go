package handlers

import (
	"net/http"

	"festoria/middleware"
	"festoria/services/payment"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes payment reconciliation over HTTP.
type PaymentHandler struct {
	Svc payment.PaymentService
}

// InitiatePayment handles POST /api/payments/initiate. The client gets back
// the pending transaction with the gateway redirect URL attached.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	tx, err := h.Svc.InitiatePayment(c.Request.Context(), input.BookingID, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// VerifyPayment handles GET /api/payments/verify/:ref. Clients poll it after
// returning from the gateway redirect; re-verifying a settled transaction
// returns the stored result.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	logger := getLogger(c)
	tx, err := h.Svc.VerifyPayment(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// GatewayCallback handles POST /api/payments/callback: the gateway's webhook
// notification. The route is guarded by the shared callback secret, so the
// body only needs the reference to reconcile.
func (h *PaymentHandler) GatewayCallback(c *gin.Context) {
	logger := getLogger(c)
	var input struct {
		ExternalRef string `json:"external_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	tx, err := h.Svc.VerifyPayment(c.Request.Context(), input.ExternalRef)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": tx.Status})
}
