package rating

import (
	"context"
	"fmt"
	"sync"

	"festoria/models"
	"festoria/services/booking"
)

// RatableProvider is the capability a provider profile type implements to
// accept aggregate rating updates. The review subsystem lives outside this
// service; it only posts finalized ratings back for completed bookings.
type RatableProvider interface {
	ApplyRating(ctx context.Context, providerID string, average float64, count int) error
}

// Registry maps provider ids to their RatableProvider implementation, so a
// rating update is a single lookup instead of probing every profile type.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]RatableProvider
	fallback RatableProvider
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]RatableProvider)}
}

// Register binds a provider id to its profile's rating capability.
func (r *Registry) Register(providerID string, p RatableProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[providerID] = p
}

// SetFallback installs the capability used for providers with no explicit
// registration (the common single-profile deployment).
func (r *Registry) SetFallback(p RatableProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = p
}

func (r *Registry) lookup(providerID string) (RatableProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.byID[providerID]; ok {
		return p, true
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}

// Service applies review-subsystem rating updates for completed bookings.
type Service struct {
	Registry *Registry
	Bookings booking.BookingService
}

// ApplyBookingRating verifies the booking finished and routes the aggregate
// rating to the provider's capability.
func (s *Service) ApplyBookingRating(ctx context.Context, bookingID string, average float64, count int) error {
	b, err := s.Bookings.GetBooking(ctx, bookingID, models.SystemActor)
	if err != nil {
		return err
	}
	if b.Status != models.StatusCompleted {
		return booking.NewError(booking.CodeInvalidTransition,
			"booking %s is %s; ratings apply to completed bookings only", bookingID, b.Status)
	}

	p, ok := s.Registry.lookup(b.ProviderID)
	if !ok {
		return fmt.Errorf("no rating capability registered for provider %s", b.ProviderID)
	}
	return p.ApplyRating(ctx, b.ProviderID, average, count)
}
