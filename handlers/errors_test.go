package handlers

import (
	"net/http"
	"testing"

	"festoria/services/booking"
)

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code booking.Code
		want int
	}{
		{booking.CodeNotFound, http.StatusNotFound},
		{booking.CodeBookingNotPayable, http.StatusBadRequest},
		{booking.CodeInvalidTransition, http.StatusConflict},
		{booking.CodeAlreadyInState, http.StatusConflict},
		{booking.CodeConcurrentModification, http.StatusConflict},
		{booking.CodePaymentAlreadyInFlight, http.StatusConflict},
		{booking.CodeGatewayUnavailable, http.StatusBadGateway},
		{"", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForCode(tc.code); got != tc.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tc.code, got, tc.want)
		}
	}
}
