// Package ports defines the contracts between the booking core and its
// infrastructure: repositories, the unit of work, the domain event dispatcher
// and the message publisher.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
)

// ListingRepository defines the persistence contract for listing aggregates.
type ListingRepository interface {
	// Add persists a new listing.
	Add(ctx context.Context, aggregate *listing.Listing) error

	// Update persists changes to an existing listing, including its status.
	Update(ctx context.Context, aggregate *listing.Listing) error

	// Get returns the listing or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error)
}
