// Package queries contains read operations for retrieving system state.
// Queries read straight from the database with GORM raw SQL and never load aggregates.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetListingQueryIsNotConstructed = errors.New(
	"GetListingQuery must be created via NewGetListingQuery constructor",
)

// GetListingQuery reads one listing. Listings are public to every authenticated actor.
type GetListingQuery struct {
	listingID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetListingQuery(listingID kernel.UUID) (GetListingQuery, error) {
	if err := listingID.Validate(); err != nil {
		return GetListingQuery{}, err
	}
	return GetListingQuery{listingID: listingID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetListingQuery) Validate() error {
	return q.guard.Validate(ErrGetListingQueryIsNotConstructed)
}

func (q GetListingQuery) ListingID() kernel.UUID { return q.listingID }

// PlaceView is a named place with optional coordinates.
type PlaceView struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type DimensionsView struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GetListingQueryResponse is the listing as exposed to clients. Stops are ordered.
type GetListingQueryResponse struct {
	ID             kernel.UUID       `json:"id"`
	OwnerID        kernel.UUID       `json:"owner_id"`
	Origin         PlaceView         `json:"origin"`
	Destination    PlaceView         `json:"destination"`
	Stops          []string          `json:"stops"`
	DepartureAt    time.Time         `json:"departure_at"`
	ArrivalAt      *time.Time        `json:"arrival_at,omitempty"`
	MaxDimensions  *DimensionsView   `json:"max_dimensions,omitempty"`
	MaxWeight      *float64          `json:"max_weight,omitempty"`
	CapacityVolume float64           `json:"capacity_volume"`
	Price          float64           `json:"price"`
	Conditions     map[string]string `json:"conditions"`
	Seats          int               `json:"seats"`
	Urgent         bool              `json:"urgent"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
