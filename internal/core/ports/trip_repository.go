package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
)

// TripRepository defines the persistence contract for trips and their position
// and incident logs.
type TripRepository interface {
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update persists the trip row, inserts positions reported since the trip
	// was loaded and inserts new incidents. Existing log rows are never rewritten.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// AppendPositions inserts the positions reported since the trip was loaded and
	// moves its current position. No other trip column is written.
	AppendPositions(ctx context.Context, aggregate *trip.Trip) error

	// Get returns the trip with its full position history in arrival order,
	// or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetByListing returns the single trip of a listing, or an *errs.ObjectNotFoundError.
	GetByListing(ctx context.Context, listingID kernel.UUID) (*trip.Trip, error)

	// Delete removes the trip together with its logs.
	Delete(ctx context.Context, aggregate *trip.Trip) error
}
