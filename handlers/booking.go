package handlers

import (
	"errors"
	"io"
	"net/http"

	"festoria/middleware"
	"festoria/models"
	"festoria/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the lifecycle engine over HTTP. Every endpoint
// resolves the acting party from the auth middleware and hands it to the
// engine, which enforces ownership and transition permissions.
type BookingHandler struct {
	Svc booking.BookingService
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.CreateBooking(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Stats handles GET /api/bookings/stats: per-status counts for the actor's
// own bookings.
func (h *BookingHandler) Stats(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	counts, err := h.Svc.Stats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// Confirm handles POST /api/bookings/:id/confirm (provider accepts).
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.Confirm(ctx.Request.Context(), ctx.Param("id"), actor)
	})
}

// Reject handles POST /api/bookings/:id/reject (provider declines).
func (h *BookingHandler) Reject(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.Reject(ctx.Request.Context(), ctx.Param("id"), actor, input.Reason)
	})
}

// RequestModification handles POST /api/bookings/:id/modify (provider
// proposes changed terms).
func (h *BookingHandler) RequestModification(c *gin.Context) {
	var input struct {
		Note    string                    `json:"note"`
		Changes models.BookingFieldChange `json:"changes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.RequestModification(ctx.Request.Context(), ctx.Param("id"), actor, input.Note, input.Changes)
	})
}

// RespondToModification handles POST /api/bookings/:id/modify/respond
// (client accepts or declines proposed terms).
func (h *BookingHandler) RespondToModification(c *gin.Context) {
	var input struct {
		Accepted *bool `json:"accepted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.RespondToModification(ctx.Request.Context(), ctx.Param("id"), actor, *input.Accepted)
	})
}

// Cancel handles POST /api/bookings/:id/cancel for either party.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.Cancel(ctx.Request.Context(), ctx.Param("id"), actor, input.Reason)
	})
}

// StartService handles POST /api/bookings/:id/start (provider marks the
// engagement underway).
func (h *BookingHandler) StartService(c *gin.Context) {
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.StartService(ctx.Request.Context(), ctx.Param("id"), actor)
	})
}

// CompleteService handles POST /api/bookings/:id/complete.
func (h *BookingHandler) CompleteService(c *gin.Context) {
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.CompleteService(ctx.Request.Context(), ctx.Param("id"), actor)
	})
}

// RaiseDispute handles POST /api/bookings/:id/dispute.
func (h *BookingHandler) RaiseDispute(c *gin.Context) {
	var input struct {
		Reason  string `json:"reason" binding:"required"`
		Details string `json:"details"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.runTransition(c, func(ctx *gin.Context, actor models.Actor) (*models.Booking, error) {
		return h.Svc.RaiseDispute(ctx.Request.Context(), ctx.Param("id"), actor, input.Reason, input.Details)
	})
}

// ResolveDispute handles POST /api/bookings/:id/dispute/resolve. The route
// is guarded by the callback secret, so the acting party is the system.
func (h *BookingHandler) ResolveDispute(c *gin.Context) {
	logger := getLogger(c)
	var input struct {
		Resolution string `json:"resolution" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Svc.ResolveDispute(c.Request.Context(), c.Param("id"), input.Resolution)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// runTransition is the shared shape of every party-driven lifecycle endpoint:
// resolve the actor, run one engine call, translate the outcome.
func (h *BookingHandler) runTransition(c *gin.Context, op func(*gin.Context, models.Actor) (*models.Booking, error)) {
	logger := getLogger(c)
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	b, err := op(c, actor)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
