package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

// GetRequestQuery reads one transport request on behalf of actor. Only the
// requester, the listing owner and admins may see it.
type GetRequestQuery struct {
	requestID kernel.UUID
	actor     kernel.Actor
	guard     guard.ConstructorGuard
}

func NewGetRequestQuery(requestID kernel.UUID, actor kernel.Actor) (GetRequestQuery, error) {
	if err := errors.Join(requestID.Validate(), actor.Validate()); err != nil {
		return GetRequestQuery{}, err
	}
	return GetRequestQuery{requestID: requestID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

func (q GetRequestQuery) RequestID() kernel.UUID { return q.requestID }
func (q GetRequestQuery) Actor() kernel.Actor    { return q.actor }

type ParcelView struct {
	Description   string         `json:"description"`
	Dimensions    DimensionsView `json:"dimensions"`
	Weight        float64        `json:"weight"`
	Category      string         `json:"category,omitempty"`
	DeclaredValue float64        `json:"declared_value"`
	Insured       bool           `json:"insured"`
}

type ContactView struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type WindowView struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type GetRequestQueryResponse struct {
	ID              kernel.UUID `json:"id"`
	RequesterID     kernel.UUID `json:"requester_id"`
	ListingID       kernel.UUID `json:"listing_id"`
	ListingOwnerID  kernel.UUID `json:"listing_owner_id"`
	Parcel          ParcelView  `json:"parcel"`
	Pickup          PlaceView   `json:"pickup"`
	Delivery        PlaceView   `json:"delivery"`
	PickupContact   ContactView `json:"pickup_contact"`
	DeliveryContact ContactView `json:"delivery_contact"`
	PickupWindow    WindowView  `json:"pickup_window"`
	DeliveryWindow  WindowView  `json:"delivery_window"`
	Status          string      `json:"status"`
	RespondedAt     *time.Time  `json:"responded_at,omitempty"`
	Comment         string      `json:"comment,omitempty"`
	RefusalReason   string      `json:"refusal_reason,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
