package models

import "testing"

func TestBookingStatusValidity(t *testing.T) {
	for _, s := range AllBookingStatuses() {
		if !s.IsValid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if BookingStatus("teleported").IsValid() {
		t.Error("unknown status should not be valid")
	}
}

func TestTransitionTableEdges(t *testing.T) {
	allowed := map[edge]bool{}
	for e := range transitionTable {
		allowed[e] = true
	}

	// Every edge not in the table must be rejected for every role.
	roles := []Role{RoleClient, RoleProvider, RoleSystem}
	for _, from := range AllBookingStatuses() {
		for _, to := range AllBookingStatuses() {
			e := edge{from, to}
			if allowed[e] {
				continue
			}
			if from.CanTransitionTo(to) {
				t.Errorf("edge %s -> %s should not exist", from, to)
			}
			for _, r := range roles {
				if from.TransitionAllowed(to, r) {
					t.Errorf("edge %s -> %s should be denied for role %s", from, to, r)
				}
			}
		}
	}
}

func TestTransitionActorPermissions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		role     Role
		want     bool
	}{
		{StatusPendingProviderConfirmation, StatusConfirmedAwaitingPayment, RoleProvider, true},
		{StatusPendingProviderConfirmation, StatusConfirmedAwaitingPayment, RoleClient, false},
		{StatusPendingProviderConfirmation, StatusCancelledByClient, RoleClient, true},
		{StatusPendingProviderConfirmation, StatusCancelledByProvider, RoleSystem, true},
		{StatusPendingProviderConfirmation, StatusCancelledByProvider, RoleProvider, false},
		{StatusModificationRequested, StatusConfirmedAwaitingPayment, RoleClient, true},
		{StatusModificationRequested, StatusConfirmedAwaitingPayment, RoleProvider, false},
		{StatusConfirmedAwaitingPayment, StatusConfirmedPaid, RoleSystem, true},
		{StatusConfirmedAwaitingPayment, StatusConfirmedPaid, RoleClient, false},
		{StatusConfirmedPaid, StatusDisputeRaised, RoleClient, true},
		{StatusConfirmedPaid, StatusDisputeRaised, RoleProvider, true},
		{StatusCompleted, StatusDisputeRaised, RoleClient, true},
		{StatusInProgress, StatusCompleted, RoleProvider, true},
		{StatusInProgress, StatusCompleted, RoleClient, false},
		{StatusInProgress, StatusCancelledByClient, RoleClient, true},
		{StatusInProgress, StatusCancelledByClient, RoleProvider, false},
		{StatusInProgress, StatusCancelledByProvider, RoleProvider, true},
		{StatusInProgress, StatusCancelledByProvider, RoleClient, false},
		{StatusDisputeRaised, StatusDisputeResolved, RoleSystem, true},
		{StatusDisputeRaised, StatusDisputeResolved, RoleClient, false},
	}
	for _, c := range cases {
		if got := c.from.TransitionAllowed(c.to, c.role); got != c.want {
			t.Errorf("TransitionAllowed(%s -> %s, %s) = %v, want %v", c.from, c.to, c.role, got, c.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []BookingStatus{
		StatusCompleted, StatusCancelledByClient, StatusCancelledByProvider,
		StatusRejected, StatusRefunded, StatusDisputeRaised, StatusDisputeResolved,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("status %s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{
		StatusPendingProviderConfirmation, StatusConfirmedAwaitingPayment,
		StatusConfirmedPaid, StatusModificationRequested, StatusInProgress,
	} {
		if s.IsTerminal() {
			t.Errorf("status %s should not be terminal", s)
		}
	}
}

func TestTransactionStatusTerminal(t *testing.T) {
	if TxPending.IsTerminal() {
		t.Error("pending transaction should not be terminal")
	}
	for _, s := range []TransactionStatus{TxCompleted, TxFailed, TxCancelled} {
		if !s.IsTerminal() {
			t.Errorf("transaction status %s should be terminal", s)
		}
	}
}
