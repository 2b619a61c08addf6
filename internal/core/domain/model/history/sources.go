package history

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
)

// ListingRecord is a listing owned by the user. Every listing of the user is
// passed in, terminal or not: the active ones are needed to resolve demands.
type ListingRecord struct {
	ID          kernel.UUID
	Origin      string
	Destination string
	Status      listing.Status
	ArrivalAt   *time.Time
	Price       float64
}

// RatingRecord is a rating received by the user.
type RatingRecord struct {
	ID        kernel.UUID
	AuthorID  kernel.UUID
	ListingID *kernel.UUID
	Score     int
	Comment   string
	Answer    *string
	CreatedAt time.Time
}

// RequestRecord is a transport request filed on one of the user's listings.
type RequestRecord struct {
	ID            kernel.UUID
	ListingID     kernel.UUID
	RequesterID   kernel.UUID
	Description   string
	Status        request.Status
	RefusalReason string
	RespondedAt   *time.Time
}

type NotificationRecord struct {
	ID        kernel.UUID
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Sources groups the records the feed is built from.
type Sources struct {
	Listings      []ListingRecord
	Ratings       []RatingRecord
	Requests      []RequestRecord
	Notifications []NotificationRecord
}
