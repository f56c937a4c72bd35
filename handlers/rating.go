package handlers

import (
	"net/http"

	"festoria/services/rating"

	"github.com/gin-gonic/gin"
)

// RatingHandler receives aggregate rating pushes from the review subsystem.
type RatingHandler struct {
	Svc *rating.Service
}

// ApplyBookingRating handles POST /api/internal/ratings. Guarded by the
// shared internal secret; the review subsystem is the only caller.
func (h *RatingHandler) ApplyBookingRating(c *gin.Context) {
	logger := getLogger(c)
	var input struct {
		BookingID string  `json:"booking_id" binding:"required"`
		Average   float64 `json:"average" binding:"required"`
		Count     int     `json:"count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.ApplyBookingRating(c.Request.Context(), input.BookingID, input.Average, input.Count); err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "applied"})
}
