package handlers

import (
	"errors"
	"net/http"

	"festoria/services/booking"
	"festoria/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusForCode maps lifecycle and payment error codes to HTTP statuses.
// Anything untyped is a 500.
func statusForCode(code booking.Code) int {
	switch code {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeBookingNotPayable:
		return http.StatusBadRequest
	case booking.CodeInvalidTransition,
		booking.CodeAlreadyInState,
		booking.CodeConcurrentModification,
		booking.CodePaymentAlreadyInFlight:
		return http.StatusConflict
	case booking.CodeGatewayUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates a service error into the standard JSON error body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	code := booking.CodeOf(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		c.JSON(status, utils.ErrorResponse{Message: "internal server error"})
		return
	}
	message := err.Error()
	var be *booking.Error
	if errors.As(err, &be) {
		message = be.Message
	}
	logger.Warn("request rejected", zap.String("code", string(code)), zap.Error(err))
	c.JSON(status, utils.ErrorResponse{Code: string(code), Message: message})
}
