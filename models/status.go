package models

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPendingProviderConfirmation BookingStatus = "pending_provider_confirmation"
	StatusConfirmedAwaitingPayment    BookingStatus = "confirmed_awaiting_payment"
	StatusConfirmedPaid               BookingStatus = "confirmed_paid"
	StatusModificationRequested       BookingStatus = "modification_requested"
	StatusInProgress                  BookingStatus = "in_progress"
	StatusCompleted                   BookingStatus = "completed"
	StatusCancelledByClient           BookingStatus = "cancelled_by_client"
	StatusCancelledByProvider         BookingStatus = "cancelled_by_provider"
	StatusRejected                    BookingStatus = "rejected"
	StatusRefunded                    BookingStatus = "refunded"
	StatusDisputeRaised               BookingStatus = "dispute_raised"
	StatusDisputeResolved             BookingStatus = "dispute_resolved"
)

// PaymentStatus tracks how far payment collection has progressed; it is
// independent of BookingStatus but must stay consistent with it.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentFailed        PaymentStatus = "failed"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentAuthorized    PaymentStatus = "authorized"
)

// Role identifies who is acting on a booking.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleSystem   Role = "system"
)

// Actor is a resolved identity acting on a booking.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// SystemActor is the identity used by background sweeps and gateway callbacks.
var SystemActor = Actor{ID: "system", Role: RoleSystem}

// edge is one allowed (from, to) pair in the booking state machine.
type edge struct {
	From BookingStatus
	To   BookingStatus
}

// transitionTable is the fixed booking state machine. Each allowed edge maps
// to the roles permitted to request it. Provider auto-expiry is the one edge
// reserved to the system: a pending booking the provider never acted on is
// force-cancelled on the provider's behalf.
var transitionTable = map[edge][]Role{
	{StatusPendingProviderConfirmation, StatusConfirmedAwaitingPayment}: {RoleProvider},
	{StatusPendingProviderConfirmation, StatusRejected}:                 {RoleProvider},
	{StatusPendingProviderConfirmation, StatusModificationRequested}:    {RoleProvider},
	{StatusPendingProviderConfirmation, StatusCancelledByClient}:        {RoleClient},
	{StatusPendingProviderConfirmation, StatusCancelledByProvider}:      {RoleSystem},

	{StatusModificationRequested, StatusPendingProviderConfirmation}: {RoleClient},
	{StatusModificationRequested, StatusConfirmedAwaitingPayment}:    {RoleClient},

	{StatusConfirmedAwaitingPayment, StatusConfirmedPaid}:       {RoleSystem},
	{StatusConfirmedAwaitingPayment, StatusCancelledByClient}:   {RoleClient},
	{StatusConfirmedAwaitingPayment, StatusCancelledByProvider}: {RoleProvider},

	{StatusConfirmedPaid, StatusInProgress}:          {RoleProvider},
	{StatusConfirmedPaid, StatusCancelledByClient}:   {RoleClient},
	{StatusConfirmedPaid, StatusCancelledByProvider}: {RoleProvider},
	{StatusConfirmedPaid, StatusDisputeRaised}:       {RoleClient, RoleProvider},

	{StatusInProgress, StatusCompleted}:           {RoleProvider},
	{StatusInProgress, StatusCancelledByClient}:   {RoleClient},
	{StatusInProgress, StatusCancelledByProvider}: {RoleProvider},
	{StatusInProgress, StatusDisputeRaised}:       {RoleClient, RoleProvider},

	// Disputes can surface after the service already finished.
	{StatusCompleted, StatusDisputeRaised}: {RoleClient, RoleProvider},

	{StatusDisputeRaised, StatusDisputeResolved}: {RoleSystem},
}

// terminalStatuses are states outside the normal happy path. A booking in one
// of these only moves again through the dedicated dispute edges above.
var terminalStatuses = map[BookingStatus]bool{
	StatusCompleted:           true,
	StatusCancelledByClient:   true,
	StatusCancelledByProvider: true,
	StatusRejected:            true,
	StatusRefunded:            true,
	StatusDisputeRaised:       true,
	StatusDisputeResolved:     true,
}

var allStatuses = []BookingStatus{
	StatusPendingProviderConfirmation,
	StatusConfirmedAwaitingPayment,
	StatusConfirmedPaid,
	StatusModificationRequested,
	StatusInProgress,
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByProvider,
	StatusRejected,
	StatusRefunded,
	StatusDisputeRaised,
	StatusDisputeResolved,
}

// AllBookingStatuses returns the full enumerated status set.
func AllBookingStatuses() []BookingStatus {
	out := make([]BookingStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is outside the normal happy path.
func (s BookingStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// CanTransitionTo returns true if the (s, target) edge exists in the table,
// regardless of actor.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	_, ok := transitionTable[edge{s, target}]
	return ok
}

// TransitionAllowed returns true if the (s, target) edge exists and the given
// role is permitted to request it.
func (s BookingStatus) TransitionAllowed(target BookingStatus, role Role) bool {
	roles, ok := transitionTable[edge{s, target}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsCancellation reports whether the status records a cancellation or
// rejection outcome.
func (s BookingStatus) IsCancellation() bool {
	return s == StatusCancelledByClient || s == StatusCancelledByProvider || s == StatusRejected
}
