package booking

import (
	"context"
	"errors"
	"time"

	catalogRepo "festoria/database/repository/catalog"
	"festoria/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking registers a client's engagement request against a catalog
// package. The package's price and features are snapshotted so later catalog
// edits cannot change the terms of this booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, client models.Actor, input CreateBookingInput) (*models.Booking, error) {
	pkg, err := s.Catalog.GetPackageByID(input.PackageID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "service package %s not found", input.PackageID)
		}
		return nil, err
	}

	now := time.Now()
	expiry := now.Add(s.autoExpiryWindow())
	booking := &models.Booking{
		ID:         uuid.New().String(),
		ClientID:   client.ID,
		ProviderID: pkg.ProviderID,
		Package: models.PackageSnapshot{
			PackageID:   pkg.ID,
			Name:        pkg.Name,
			ServiceType: pkg.ServiceType,
			Price:       pkg.Price,
			Features:    pkg.Features,
		},
		ServiceType:     pkg.ServiceType,
		EventDate:       input.EventDate,
		EventTime:       input.EventTime,
		EventLocation:   input.EventLocation,
		EventType:       input.EventType,
		TotalAmount:     pkg.Price,
		SpecialRequests: input.SpecialRequests,
		Status:          models.StatusPendingProviderConfirmation,
		PaymentStatus:   models.PaymentPending,
		AutoExpiryDate:  &expiry,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repo.Create(booking); err != nil {
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("clientId", client.ID),
		zap.String("providerId", booking.ProviderID),
		zap.String("packageId", pkg.ID))

	if s.Notifier != nil {
		if err := s.Notifier.Notify(ctx, booking.ID, models.RoleProvider, models.EventBookingCreated, nil); err != nil {
			s.Logger.Warn("failed to notify provider of new booking",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

// GetBooking fetches a booking visible to the actor.
func (s *DefaultBookingService) GetBooking(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	return s.getOwned(id, actor)
}

// Stats returns aggregate booking counts by status for the actor's side.
func (s *DefaultBookingService) Stats(ctx context.Context, actor models.Actor) (map[models.BookingStatus]int64, error) {
	return s.Repo.CountByStatus(actor)
}
