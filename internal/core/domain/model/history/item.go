package history

import (
	"time"

	"freight/internal/core/domain/model/kernel"
)

// Kind tags the variant of a feed item.
type Kind string

const (
	KindTrip         Kind = "trip"
	KindRating       Kind = "rating"
	KindDemand       Kind = "demand"
	KindNotification Kind = "notification"
)

// Item is one entry of the history feed. Payload carries the kind-specific data
// and always matches Kind.
type Item struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Icon        string    `json:"icon"`
	Payload     Payload   `json:"payload"`
	SortKey     time.Time `json:"-"`
}

// Payload is implemented by the four kind-specific payloads.
type Payload interface {
	Kind() Kind
}

type TripPayload struct {
	ListingID   kernel.UUID `json:"listing_id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Price       float64     `json:"price"`
}

type RatingPayload struct {
	RatingID  kernel.UUID  `json:"rating_id"`
	AuthorID  kernel.UUID  `json:"author_id"`
	ListingID *kernel.UUID `json:"listing_id,omitempty"`
	Score     int          `json:"score"`
	Comment   string       `json:"comment,omitempty"`
	Answer    *string      `json:"answer,omitempty"`
}

type DemandPayload struct {
	RequestID     kernel.UUID `json:"request_id"`
	ListingID     kernel.UUID `json:"listing_id"`
	RequesterID   kernel.UUID `json:"requester_id"`
	RefusalReason string      `json:"refusal_reason,omitempty"`
}

type NotificationPayload struct {
	NotificationID kernel.UUID `json:"notification_id"`
	Read           bool        `json:"read"`
}

func (TripPayload) Kind() Kind         { return KindTrip }
func (RatingPayload) Kind() Kind       { return KindRating }
func (DemandPayload) Kind() Kind       { return KindDemand }
func (NotificationPayload) Kind() Kind { return KindNotification }
