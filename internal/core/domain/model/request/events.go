package request

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/ddd"
)

const (
	PlacedEventName        = "request.placed"
	StatusChangedEventName = "request.status_changed"
	WithdrawnEventName     = "request.withdrawn"
)

type PlacedEvent struct {
	ddd.BaseEvent
	RequestID   kernel.UUID `json:"request_id"`
	ListingID   kernel.UUID `json:"listing_id"`
	RequesterID kernel.UUID `json:"requester_id"`
	WeightKg    float64     `json:"weight_kg"`
}

// StatusChangedEvent is raised on every accepted transition. Acceptance attaches
// the request to the listing's trip.
type StatusChangedEvent struct {
	ddd.BaseEvent
	RequestID     kernel.UUID `json:"request_id"`
	ListingID     kernel.UUID `json:"listing_id"`
	From          string      `json:"from"`
	To            string      `json:"to"`
	ChangedBy     kernel.UUID `json:"changed_by"`
	RefusalReason string      `json:"refusal_reason,omitempty"`
}

type WithdrawnEvent struct {
	ddd.BaseEvent
	RequestID kernel.UUID `json:"request_id"`
	ListingID kernel.UUID `json:"listing_id"`
}
