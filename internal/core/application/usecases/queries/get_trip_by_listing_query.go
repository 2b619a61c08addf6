package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetTripByListingQueryIsNotConstructed = errors.New(
	"GetTripByListingQuery must be created via NewGetTripByListingQuery constructor",
)

// GetTripByListingQuery reads the single trip planned for a listing.
type GetTripByListingQuery struct {
	listingID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetTripByListingQuery(listingID kernel.UUID) (GetTripByListingQuery, error) {
	if err := listingID.Validate(); err != nil {
		return GetTripByListingQuery{}, err
	}
	return GetTripByListingQuery{listingID: listingID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTripByListingQuery) Validate() error {
	return q.guard.Validate(ErrGetTripByListingQueryIsNotConstructed)
}

func (q GetTripByListingQuery) ListingID() kernel.UUID { return q.listingID }

type IncidentView struct {
	ID          kernel.UUID `json:"id"`
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Severity    string      `json:"severity"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

type GetTripByListingQueryResponse struct {
	ID               kernel.UUID    `json:"id"`
	ListingID        kernel.UUID    `json:"listing_id"`
	CarrierID        kernel.UUID    `json:"carrier_id"`
	RequestIDs       []string       `json:"request_ids"`
	Status           string         `json:"status"`
	PlannedDeparture time.Time      `json:"planned_departure"`
	ActualDeparture  *time.Time     `json:"actual_departure,omitempty"`
	ActualArrival    *time.Time     `json:"actual_arrival,omitempty"`
	DistanceKm       float64        `json:"distance_km"`
	Cost             float64        `json:"cost"`
	Rating           *float64       `json:"rating,omitempty"`
	Current          *PositionView  `json:"current,omitempty"`
	Incidents        []IncidentView `json:"incidents"`
}
