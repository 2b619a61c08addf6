package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetTrackQueryIsNotConstructed = errors.New(
	"GetTrackQuery must be created via NewGetTrackQuery constructor",
)

// GetTrackQuery reads a trip's current position and its full position history.
type GetTrackQuery struct {
	tripID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetTrackQuery(tripID kernel.UUID) (GetTrackQuery, error) {
	if err := tripID.Validate(); err != nil {
		return GetTrackQuery{}, err
	}
	return GetTrackQuery{tripID: tripID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackQueryIsNotConstructed)
}

func (q GetTrackQuery) TripID() kernel.UUID { return q.tripID }

type PositionView struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reported_at"`
}

// GetTrackQueryResponse lists the history in arrival order, which may differ from
// timestamp order.
type GetTrackQueryResponse struct {
	TripID  kernel.UUID    `json:"trip_id"`
	Status  string         `json:"status"`
	Current *PositionView  `json:"current,omitempty"`
	History []PositionView `json:"history"`
}
