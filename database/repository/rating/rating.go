package ratingRepo

import (
	"context"
)

// ProviderRatingRepository persists aggregate provider ratings pushed back by
// the review subsystem.
type ProviderRatingRepository interface {
	// ApplyRating upserts the provider's aggregate rating.
	ApplyRating(ctx context.Context, providerID string, average float64, count int) error
}
