package listing

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/ddd"
)

const (
	PublishedEventName  = "listing.published"
	CancelledEventName  = "listing.cancelled"
	CompletedEventName  = "listing.completed"
	SuspendedEventName  = "listing.suspended"
	ReinstatedEventName = "listing.reinstated"
)

// PublishedEvent is raised when a carrier publishes a listing. The trip module
// plans a trip for it in the same transaction.
type PublishedEvent struct {
	ddd.BaseEvent
	ListingID   kernel.UUID `json:"listing_id"`
	OwnerID     kernel.UUID `json:"owner_id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	DepartureAt time.Time   `json:"departure_at"`
	Price       float64     `json:"price"`
}

// CancelledEvent is raised on cancellation. The listing's trip is removed in the same transaction.
type CancelledEvent struct {
	ddd.BaseEvent
	ListingID   kernel.UUID `json:"listing_id"`
	CancelledBy kernel.UUID `json:"cancelled_by"`
}

type CompletedEvent struct {
	ddd.BaseEvent
	ListingID kernel.UUID `json:"listing_id"`
	ArrivedAt time.Time   `json:"arrived_at"`
}

type SuspendedEvent struct {
	ddd.BaseEvent
	ListingID kernel.UUID `json:"listing_id"`
}

type ReinstatedEvent struct {
	ddd.BaseEvent
	ListingID kernel.UUID `json:"listing_id"`
}
