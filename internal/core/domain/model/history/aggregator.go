package history

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync/atomic"
	"time"

	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
)

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04"

	positiveScore = 4
)

var ErrLocationIsRequired = errors.New("history aggregator requires a time zone")

// Aggregator merges a user's terminal listings, received ratings, answered
// demands and notifications into one feed, newest first.
type Aggregator struct {
	loc *time.Location
}

func NewAggregator(loc *time.Location) (*Aggregator, error) {
	if loc == nil {
		return nil, ErrLocationIsRequired
	}
	return &Aggregator{loc: loc}, nil
}

// Merge returns the feed built from src.
//
// Items are enumerated as listings, ratings, demands, notifications and sorted
// by their rendered timestamp, newest first. The sort is stable, so items with
// the same minute keep the enumeration order; items without a timestamp come last.
// Demands whose listing is not among src.Listings are dropped.
//
// The sequence is lazy and single-use: it is computed on first iteration and
// yields nothing afterwards.
func (a *Aggregator) Merge(src Sources) iter.Seq[Item] {
	var consumed atomic.Bool
	return func(yield func(Item) bool) {
		if consumed.Swap(true) {
			return
		}
		for _, item := range a.build(src) {
			if !yield(item) {
				return
			}
		}
	}
}

func (a *Aggregator) build(src Sources) []Item {
	items := make([]Item, 0, len(src.Listings)+len(src.Ratings)+len(src.Requests)+len(src.Notifications))

	owned := make(map[string]ListingRecord, len(src.Listings))
	for _, l := range src.Listings {
		owned[l.ID.String()] = l
		if l.Status.IsTerminal() {
			items = append(items, a.tripItem(l))
		}
	}
	for _, r := range src.Ratings {
		items = append(items, a.ratingItem(r))
	}
	for _, r := range src.Requests {
		l, ok := owned[r.ListingID.String()]
		if !ok || !r.Status.IsFinal() {
			continue
		}
		items = append(items, a.demandItem(r, l))
	}
	for _, n := range src.Notifications {
		items = append(items, a.notificationItem(n))
	}

	slices.SortStableFunc(items, func(x, y Item) int {
		return y.SortKey.Compare(x.SortKey)
	})
	return items
}

func (a *Aggregator) tripItem(l ListingRecord) Item {
	description := "Trip completed"
	if l.Status == listing.Cancelled {
		description = "Trip cancelled"
	}
	return a.stamp(Item{
		ID:          l.ID.String(),
		Kind:        KindTrip,
		Title:       fmt.Sprintf("%s → %s", l.Origin, l.Destination),
		Description: description,
		Status:      l.Status.String(),
		Icon:        "truck",
		Payload: TripPayload{
			ListingID:   l.ID,
			Origin:      l.Origin,
			Destination: l.Destination,
			Price:       l.Price,
		},
	}, l.ArrivalAt)
}

func (a *Aggregator) ratingItem(r RatingRecord) Item {
	tag := "neutral"
	if r.Score >= positiveScore {
		tag = "positive"
	}
	description := r.Comment
	if description == "" {
		description = fmt.Sprintf("Rated %d/5", r.Score)
	}
	createdAt := r.CreatedAt
	return a.stamp(Item{
		ID:          r.ID.String(),
		Kind:        KindRating,
		Title:       "New rating",
		Description: description,
		Status:      tag,
		Icon:        "star",
		Payload: RatingPayload{
			RatingID:  r.ID,
			AuthorID:  r.AuthorID,
			ListingID: r.ListingID,
			Score:     r.Score,
			Comment:   r.Comment,
			Answer:    r.Answer,
		},
	}, &createdAt)
}

func (a *Aggregator) demandItem(r RequestRecord, l ListingRecord) Item {
	description := fmt.Sprintf("Request delivered on %s → %s", l.Origin, l.Destination)
	if r.Status == request.Refused {
		description = fmt.Sprintf("Request refused on %s → %s", l.Origin, l.Destination)
	}
	return a.stamp(Item{
		ID:          r.ID.String(),
		Kind:        KindDemand,
		Title:       r.Description,
		Description: description,
		Status:      r.Status.String(),
		Icon:        "package",
		Payload: DemandPayload{
			RequestID:     r.ID,
			ListingID:     r.ListingID,
			RequesterID:   r.RequesterID,
			RefusalReason: r.RefusalReason,
		},
	}, r.RespondedAt)
}

func (a *Aggregator) notificationItem(n NotificationRecord) Item {
	tag := "unread"
	if n.Read {
		tag = "read"
	}
	createdAt := n.CreatedAt
	return a.stamp(Item{
		ID:          n.ID.String(),
		Kind:        KindNotification,
		Title:       n.Title,
		Description: n.Message,
		Status:      tag,
		Icon:        "bell",
		Payload:     NotificationPayload{NotificationID: n.ID, Read: n.Read},
	}, &createdAt)
}

// stamp renders ts in the aggregator's zone and derives the sort key back from
// the rendered text, so ordering has minute precision.
func (a *Aggregator) stamp(item Item, ts *time.Time) Item {
	if ts == nil || ts.IsZero() {
		return item
	}

	local := ts.In(a.loc)
	item.Date = local.Format(dateLayout)
	item.Time = local.Format(timeLayout)

	key, err := time.ParseInLocation(dateLayout+" "+timeLayout, item.Date+" "+item.Time, a.loc)
	if err == nil {
		item.SortKey = key
	}
	return item
}
