package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "festoria/database/repository/booking"
	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type mockBookingRepo struct {
	createFn          func(b *models.Booking) error
	getByIDFn         func(id string) (*models.Booking, error)
	applyTransitionFn func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error)
	setPaymentFn      func(id string, status models.PaymentStatus) error
	expiredFn         func(now time.Time) ([]models.Booking, error)
	overdueFn         func(now time.Time) ([]models.Booking, error)
	countFn           func(actor models.Actor) (map[models.BookingStatus]int64, error)
}

func (m *mockBookingRepo) Create(b *models.Booking) error { return m.createFn(b) }
func (m *mockBookingRepo) GetByID(id string) (*models.Booking, error) {
	return m.getByIDFn(id)
}
func (m *mockBookingRepo) ApplyTransition(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
	return m.applyTransitionFn(id, expected, update)
}
func (m *mockBookingRepo) SetPaymentStatus(id string, status models.PaymentStatus) error {
	return m.setPaymentFn(id, status)
}
func (m *mockBookingRepo) FindExpiredPending(now time.Time) ([]models.Booking, error) {
	return m.expiredFn(now)
}
func (m *mockBookingRepo) FindPaymentOverdue(now time.Time) ([]models.Booking, error) {
	return m.overdueFn(now)
}
func (m *mockBookingRepo) CountByStatus(actor models.Actor) (map[models.BookingStatus]int64, error) {
	return m.countFn(actor)
}
func (m *mockBookingRepo) EnsureIndexes() error { return nil }

type mockRefunder struct {
	refundFn func(ctx context.Context, b *models.Booking, reason string) error
	calls    int
}

func (m *mockRefunder) Refund(ctx context.Context, b *models.Booking, reason string) error {
	m.calls++
	if m.refundFn != nil {
		return m.refundFn(ctx, b, reason)
	}
	return nil
}

type sentEvent struct {
	Recipient models.Role
	Event     models.BookingEvent
}

type mockNotifier struct {
	sent []sentEvent
}

func (m *mockNotifier) Notify(ctx context.Context, bookingID string, recipient models.Role, event models.BookingEvent, data map[string]string) error {
	m.sent = append(m.sent, sentEvent{Recipient: recipient, Event: event})
	return nil
}

var (
	clientActor   = models.Actor{ID: "client-1", Role: models.RoleClient}
	providerActor = models.Actor{ID: "provider-1", Role: models.RoleProvider}
)

func testBooking(status models.BookingStatus) *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		ClientID:      clientActor.ID,
		ProviderID:    providerActor.ID,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		TotalAmount:   500,
		Package:       models.PackageSnapshot{PackageID: "pkg-1", Name: "Gold Decor", Price: 500},
	}
}

func testService(repo *mockBookingRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:     repo,
		Payments: &mockRefunder{},
		Logger:   zap.NewNop(),
	}
}

// applyUpdate is what the tests use in place of Mongo: apply the status from
// the update doc and return the booking.
func applyUpdate(b *models.Booking, update bson.M) *models.Booking {
	set := update["$set"].(bson.M)
	b.Status = set["status"].(models.BookingStatus)
	if ps, ok := set["payment_status"].(models.PaymentStatus); ok {
		b.PaymentStatus = ps
	}
	return b
}

func TestConfirmSetsPaymentDeadline(t *testing.T) {
	current := testBooking(models.StatusPendingProviderConfirmation)
	var captured bson.M
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
		applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
			if expected != models.StatusPendingProviderConfirmation {
				t.Fatalf("expected CAS against pending status, got %s", expected)
			}
			captured = update
			return applyUpdate(current, update), nil
		},
	}
	svc := testService(repo)

	updated, err := svc.Confirm(context.Background(), "bk-1", providerActor)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if updated.Status != models.StatusConfirmedAwaitingPayment {
		t.Errorf("status = %s, want %s", updated.Status, models.StatusConfirmedAwaitingPayment)
	}

	set := captured["$set"].(bson.M)
	if _, ok := set["confirmed_at"]; !ok {
		t.Error("confirm should stamp confirmed_at")
	}
	if _, ok := set["payment_due_date"]; !ok {
		t.Error("confirm should arm the payment deadline")
	}
	unset := captured["$unset"].(bson.M)
	if _, ok := unset["auto_expiry_date"]; !ok {
		t.Error("confirm should clear the auto-expiry deadline")
	}
}

func TestTransitionRejectsUnknownEdges(t *testing.T) {
	actors := []models.Actor{clientActor, providerActor, models.SystemActor}
	for _, from := range models.AllBookingStatuses() {
		for _, to := range models.AllBookingStatuses() {
			if from == to || from.CanTransitionTo(to) {
				continue
			}
			for _, actor := range actors {
				current := testBooking(from)
				repo := &mockBookingRepo{
					getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
					applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
						t.Fatalf("%s -> %s as %s must not reach the store", from, to, actor.Role)
						return nil, nil
					},
				}
				_, err := testService(repo).Transition(context.Background(), "bk-1", to, actor)
				if !IsCode(err, CodeInvalidTransition) {
					t.Errorf("%s -> %s as %s: got %v, want INVALID_TRANSITION", from, to, actor.Role, err)
				}
			}
		}
	}
}

func TestTransitionEnforcesActorPermission(t *testing.T) {
	cases := []struct {
		name  string
		from  models.BookingStatus
		to    models.BookingStatus
		actor models.Actor
	}{
		{"client cannot confirm", models.StatusPendingProviderConfirmation, models.StatusConfirmedAwaitingPayment, clientActor},
		{"provider cannot accept own modification", models.StatusModificationRequested, models.StatusConfirmedAwaitingPayment, providerActor},
		{"client cannot mark paid", models.StatusConfirmedAwaitingPayment, models.StatusConfirmedPaid, clientActor},
		{"client cannot start service", models.StatusConfirmedPaid, models.StatusInProgress, clientActor},
		{"provider cannot auto-expire", models.StatusPendingProviderConfirmation, models.StatusCancelledByProvider, providerActor},
		{"client cannot resolve dispute", models.StatusDisputeRaised, models.StatusDisputeResolved, clientActor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := testBooking(tc.from)
			repo := &mockBookingRepo{
				getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
			}
			_, err := testService(repo).Transition(context.Background(), "bk-1", tc.to, tc.actor)
			if !IsCode(err, CodeInvalidTransition) {
				t.Errorf("got %v, want INVALID_TRANSITION", err)
			}
		})
	}
}

func TestTransitionAlreadyInState(t *testing.T) {
	current := testBooking(models.StatusConfirmedAwaitingPayment)
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
	}
	_, err := testService(repo).Transition(context.Background(), "bk-1", models.StatusConfirmedAwaitingPayment, providerActor)
	if !IsCode(err, CodeAlreadyInState) {
		t.Fatalf("got %v, want ALREADY_IN_STATE", err)
	}
}

func TestTransitionConcurrentConflict(t *testing.T) {
	current := testBooking(models.StatusPendingProviderConfirmation)
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
		applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
			return nil, bookingRepo.ErrStatusConflict
		},
	}
	_, err := testService(repo).Confirm(context.Background(), "bk-1", providerActor)
	if !IsCode(err, CodeConcurrentModification) {
		t.Fatalf("got %v, want CONCURRENT_MODIFICATION", err)
	}
}

func TestGetBookingHidesForeignBookings(t *testing.T) {
	current := testBooking(models.StatusPendingProviderConfirmation)
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
	}
	stranger := models.Actor{ID: "client-999", Role: models.RoleClient}
	_, err := testService(repo).GetBooking(context.Background(), "bk-1", stranger)
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("got %v, want NOT_FOUND for a stranger", err)
	}
}

func TestCancelPaidBookingRefundsFirst(t *testing.T) {
	current := testBooking(models.StatusConfirmedPaid)
	current.PaymentStatus = models.PaymentPaid

	refunder := &mockRefunder{}
	applied := false
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
		applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
			if refunder.calls == 0 {
				t.Fatal("cancellation persisted before the refund ran")
			}
			applied = true
			return applyUpdate(current, update), nil
		},
	}
	svc := testService(repo)
	svc.Payments = refunder

	if _, err := svc.Cancel(context.Background(), "bk-1", clientActor, "change of plans"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if refunder.calls != 1 {
		t.Errorf("refund calls = %d, want 1", refunder.calls)
	}
	if !applied {
		t.Error("cancellation was never persisted")
	}
}

func TestCancelMidServiceRefundsAndFinalizes(t *testing.T) {
	cases := []struct {
		name  string
		actor models.Actor
		want  models.BookingStatus
	}{
		{"client cancels mid-service", clientActor, models.StatusCancelledByClient},
		{"provider cancels mid-service", providerActor, models.StatusCancelledByProvider},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := testBooking(models.StatusInProgress)
			current.PaymentStatus = models.PaymentPaid

			refunder := &mockRefunder{}
			repo := &mockBookingRepo{
				getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
				applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
					if refunder.calls == 0 {
						t.Fatal("cancellation persisted before the refund ran")
					}
					return applyUpdate(current, update), nil
				},
			}
			svc := testService(repo)
			svc.Payments = refunder

			updated, err := svc.Cancel(context.Background(), "bk-1", tc.actor, "venue closed")
			if err != nil {
				t.Fatalf("Cancel failed: %v", err)
			}
			if updated.Status != tc.want {
				t.Errorf("status = %s, want %s", updated.Status, tc.want)
			}
			if refunder.calls != 1 {
				t.Errorf("refund calls = %d, want 1", refunder.calls)
			}
		})
	}
}

func TestCancelPaidBookingAbortsWhenRefundFails(t *testing.T) {
	current := testBooking(models.StatusConfirmedPaid)
	current.PaymentStatus = models.PaymentPaid

	refunder := &mockRefunder{
		refundFn: func(ctx context.Context, b *models.Booking, reason string) error {
			return errors.New("no completed transaction")
		},
	}
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
		applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
			t.Fatal("cancellation must not persist when the refund fails")
			return nil, nil
		},
	}
	svc := testService(repo)
	svc.Payments = refunder

	if _, err := svc.Cancel(context.Background(), "bk-1", clientActor, ""); err == nil {
		t.Fatal("expected refund failure to abort the cancellation")
	}
}

func TestCancelBySystemTargetsProviderSide(t *testing.T) {
	current := testBooking(models.StatusPendingProviderConfirmation)
	var captured models.BookingStatus
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
		applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
			captured = update["$set"].(bson.M)["status"].(models.BookingStatus)
			return applyUpdate(current, update), nil
		},
	}
	if _, err := testService(repo).Cancel(context.Background(), "bk-1", models.SystemActor, "auto-expired"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if captured != models.StatusCancelledByProvider {
		t.Errorf("system cancel landed on %s, want %s", captured, models.StatusCancelledByProvider)
	}
}

func TestAcceptedModificationMergesProposedFields(t *testing.T) {
	newAmount := 750.0
	newLocation := "Riverside Gardens"
	current := testBooking(models.StatusModificationRequested)
	current.ModificationRequest = &models.ModificationRequest{
		ProposedBy: providerActor.ID,
		ProposedAt: time.Now(),
		Modifications: models.BookingFieldChange{
			TotalAmount:   &newAmount,
			EventLocation: &newLocation,
		},
	}

	var captured bson.M
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
		applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
			captured = update
			return applyUpdate(current, update), nil
		},
	}
	if _, err := testService(repo).RespondToModification(context.Background(), "bk-1", clientActor, true); err != nil {
		t.Fatalf("RespondToModification failed: %v", err)
	}

	set := captured["$set"].(bson.M)
	if got := set["total_amount"]; got != newAmount {
		t.Errorf("total_amount = %v, want %v", got, newAmount)
	}
	if got := set["event_location"]; got != newLocation {
		t.Errorf("event_location = %v, want %v", got, newLocation)
	}
	unset := captured["$unset"].(bson.M)
	if _, ok := unset["modification_request"]; !ok {
		t.Error("accepted modification should clear the stored proposal")
	}
}

func TestTransitionNotificationEvents(t *testing.T) {
	cases := []struct {
		name      string
		from      models.BookingStatus
		run       func(svc *DefaultBookingService) error
		wantEvent models.BookingEvent
		wantRole  models.Role
	}{
		{
			name: "confirm notifies client",
			from: models.StatusPendingProviderConfirmation,
			run: func(svc *DefaultBookingService) error {
				_, err := svc.Confirm(context.Background(), "bk-1", providerActor)
				return err
			},
			wantEvent: models.EventBookingConfirmed,
			wantRole:  models.RoleClient,
		},
		{
			name: "accepted modification notifies provider",
			from: models.StatusModificationRequested,
			run: func(svc *DefaultBookingService) error {
				_, err := svc.RespondToModification(context.Background(), "bk-1", clientActor, true)
				return err
			},
			wantEvent: models.EventModificationAccepted,
			wantRole:  models.RoleProvider,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := testBooking(tc.from)
			repo := &mockBookingRepo{
				getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
				applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
					return applyUpdate(current, update), nil
				},
			}
			notifier := &mockNotifier{}
			svc := testService(repo)
			svc.Notifier = notifier

			if err := tc.run(svc); err != nil {
				t.Fatalf("transition failed: %v", err)
			}
			if len(notifier.sent) != 1 {
				t.Fatalf("sent %d notifications, want 1: %+v", len(notifier.sent), notifier.sent)
			}
			if notifier.sent[0].Event != tc.wantEvent || notifier.sent[0].Recipient != tc.wantRole {
				t.Errorf("sent %+v, want %s to %s", notifier.sent[0], tc.wantEvent, tc.wantRole)
			}
		})
	}
}

func TestDeclinedModificationRearmsExpiry(t *testing.T) {
	current := testBooking(models.StatusModificationRequested)
	current.ModificationRequest = &models.ModificationRequest{ProposedBy: providerActor.ID}

	var captured bson.M
	repo := &mockBookingRepo{
		getByIDFn: func(id string) (*models.Booking, error) { return current, nil },
		applyTransitionFn: func(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error) {
			captured = update
			return applyUpdate(current, update), nil
		},
	}
	updated, err := testService(repo).RespondToModification(context.Background(), "bk-1", clientActor, false)
	if err != nil {
		t.Fatalf("RespondToModification failed: %v", err)
	}
	if updated.Status != models.StatusPendingProviderConfirmation {
		t.Errorf("status = %s, want %s", updated.Status, models.StatusPendingProviderConfirmation)
	}
	set := captured["$set"].(bson.M)
	if _, ok := set["auto_expiry_date"]; !ok {
		t.Error("declined modification should restart the expiry clock")
	}
}
