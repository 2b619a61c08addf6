package listing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/ddd"
	"freight/internal/pkg/errs"
)

var (
	// ErrListingIsNotConstructed is returned when a Listing was not created through
	// NewListing or RestoreListing.
	ErrListingIsNotConstructed = errors.New("Listing must be created via NewListing constructor")
)

// Params carries the carrier-supplied terms of a listing.
//
// Stops is the bare-name shorthand; names are normalized into ordered Stop records.
// A zero Seats means the default of one seat. MaxDimensions and MaxWeight may be nil,
// in which case no transport request can be placed against the listing.
type Params struct {
	Origin         kernel.Place
	Destination    kernel.Place
	Stops          []string
	DepartureAt    time.Time
	ArrivalAt      time.Time
	MaxDimensions  *kernel.Dimensions
	MaxWeight      *float64
	CapacityVolume float64
	Price          float64
	Conditions     map[string]string
	Seats          int
	Urgent         bool
}

// Patch is a partial update of the terms. Nil fields are left unchanged.
type Patch struct {
	Origin         *kernel.Place
	Destination    *kernel.Place
	Stops          *[]string
	DepartureAt    *time.Time
	ArrivalAt      *time.Time
	MaxDimensions  *kernel.Dimensions
	MaxWeight      *float64
	CapacityVolume *float64
	Price          *float64
	Conditions     map[string]string
	Seats          *int
	Urgent         *bool
}

// Listing is the aggregate root for a carrier's published transport capacity.
//
// Listing follows these invariants:
//   - The owner is a carrier
//   - Origin and destination are set; arrival, when known, is not before departure
//   - Status only moves forward; Complete and Cancelled are irreversible
//   - Only the owner or an admin may change it
type Listing struct {
	ddd.BaseAggregate

	id      kernel.UUID
	ownerID kernel.UUID
	terms   terms
	status  Status

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

type terms struct {
	origin         kernel.Place
	destination    kernel.Place
	stops          []Stop
	departureAt    time.Time
	arrivalAt      time.Time
	maxDimensions  *kernel.Dimensions
	maxWeight      *float64
	capacityVolume float64
	price          float64
	conditions     map[string]string
	seats          int
	urgent         bool
}

// NewListing publishes a new active listing on behalf of owner.
//
// Returns an *errs.ForbiddenRoleError unless owner is a carrier, and the joined
// validation errors of every invalid term otherwise. A successful call raises
// PublishedEvent.
//
// Example:
//
//	origin, _ := kernel.NewPlace("Casablanca", nil)
//	destination, _ := kernel.NewPlace("Tangier", nil)
//	l, err := listing.NewListing(kernel.NewUUID(), carrier, listing.Params{
//	    Origin:      origin,
//	    Destination: destination,
//	    Stops:       []string{"Rabat", "Kenitra"},
//	    DepartureAt: departure,
//	}, time.Now())
func NewListing(id kernel.UUID, owner kernel.Actor, p Params, now time.Time) (*Listing, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if owner.Role() != kernel.Carrier {
		return nil, errs.NewForbiddenRoleError("publish a listing", owner.Role())
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	t, err := newTerms(p)
	if err != nil {
		return nil, err
	}
	if err := t.checkPlannedArrival(); err != nil {
		return nil, err
	}

	l := &Listing{
		id:            id,
		ownerID:       owner.ID(),
		terms:         t,
		status:        Active,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	l.RaiseDomainEvent(PublishedEvent{
		BaseEvent:   ddd.NewBaseEvent(PublishedEventName, id.Bytes(), now),
		ListingID:   id,
		OwnerID:     owner.ID(),
		Origin:      t.origin.Name(),
		Destination: t.destination.Name(),
		DepartureAt: t.departureAt,
		Price:       t.price,
	})

	return l, nil
}

// RestoreListing rebuilds a listing from storage without raising events.
func RestoreListing(
	id kernel.UUID,
	ownerID kernel.UUID,
	p Params,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Listing, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	t, err := newTerms(p)
	if err != nil {
		return nil, err
	}

	return &Listing{
		id:            id,
		ownerID:       ownerID,
		terms:         t,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Listing was built through a constructor.
func (l *Listing) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrListingIsNotConstructed
	}
	return nil
}

func (l *Listing) IsEqual(other *Listing) bool {
	return other != nil && l.id.IsEqual(other.id)
}

func (l *Listing) ID() kernel.UUID                   { return l.id }
func (l *Listing) OwnerID() kernel.UUID              { return l.ownerID }
func (l *Listing) Origin() kernel.Place              { return l.terms.origin }
func (l *Listing) Destination() kernel.Place         { return l.terms.destination }
func (l *Listing) Stops() []Stop                     { return slices.Clone(l.terms.stops) }
func (l *Listing) DepartureAt() time.Time            { return l.terms.departureAt }
func (l *Listing) ArrivalAt() time.Time              { return l.terms.arrivalAt }
func (l *Listing) CapacityVolume() float64           { return l.terms.capacityVolume }
func (l *Listing) Price() float64                    { return l.terms.price }
func (l *Listing) Conditions() map[string]string     { return maps.Clone(l.terms.conditions) }
func (l *Listing) Seats() int                        { return l.terms.seats }
func (l *Listing) Urgent() bool                      { return l.terms.urgent }
func (l *Listing) Status() Status                    { return l.status }
func (l *Listing) CreatedAt() time.Time              { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time              { return l.updatedAt }
func (l *Listing) MaxDimensions() *kernel.Dimensions { return copyPtr(l.terms.maxDimensions) }
func (l *Listing) MaxWeight() *float64               { return copyPtr(l.terms.maxWeight) }

// StopNames returns the stop names in route order.
func (l *Listing) StopNames() []string {
	names := make([]string, len(l.terms.stops))
	for i, s := range l.terms.stops {
		names[i] = s.name
	}
	return names
}

// EnsureAcceptsRequests returns an *errs.InvalidStateError unless the listing is active.
func (l *Listing) EnsureAcceptsRequests() error {
	if l.status != Active {
		return errs.NewInvalidStateError("listing", l.status, "accept requests on")
	}
	return nil
}

// Update applies patch on behalf of actor.
//
// Business rules:
//   - Only the owner or an admin may update (*errs.ForbiddenError)
//   - Terminal listings cannot change (*errs.InvalidStateError)
//   - The merged terms are validated as a whole; on error nothing changes
func (l *Listing) Update(actor kernel.Actor, patch Patch, now time.Time) error {
	if err := l.ensureManagedBy(actor); err != nil {
		return err
	}
	if l.status.IsTerminal() {
		return errs.NewInvalidStateError("listing", l.status, "update")
	}

	t, err := newTerms(l.params().merge(patch))
	if err != nil {
		return err
	}
	if err := t.checkPlannedArrival(); err != nil {
		return err
	}

	l.terms = t
	l.updatedAt = now
	return nil
}

// Cancel withdraws the listing. The record is retained with status Cancelled and
// CancelledEvent is raised so that the associated trip is removed.
func (l *Listing) Cancel(actor kernel.Actor, now time.Time) error {
	if err := l.ensureManagedBy(actor); err != nil {
		return err
	}

	newStatus, err := l.status.Cancel()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.updatedAt = now
	l.RaiseDomainEvent(CancelledEvent{
		BaseEvent:   ddd.NewBaseEvent(CancelledEventName, l.id.Bytes(), now),
		ListingID:   l.id,
		CancelledBy: actor.ID(),
	})
	return nil
}

// Complete marks an active listing complete and stamps its arrival with now.
func (l *Listing) Complete(actor kernel.Actor, now time.Time) error {
	if err := l.ensureManagedBy(actor); err != nil {
		return err
	}

	newStatus, err := l.status.Complete()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.terms.arrivalAt = now
	l.updatedAt = now
	l.RaiseDomainEvent(CompletedEvent{
		BaseEvent: ddd.NewBaseEvent(CompletedEventName, l.id.Bytes(), now),
		ListingID: l.id,
		ArrivedAt: now,
	})
	return nil
}

// Suspend puts an active listing on moderation hold. Admins only.
func (l *Listing) Suspend(actor kernel.Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewForbiddenRoleError("suspend a listing", actor.Role())
	}

	newStatus, err := l.status.Suspend()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.updatedAt = now
	l.RaiseDomainEvent(SuspendedEvent{
		BaseEvent: ddd.NewBaseEvent(SuspendedEventName, l.id.Bytes(), now),
		ListingID: l.id,
	})
	return nil
}

// Reinstate lifts a moderation hold. Admins only.
func (l *Listing) Reinstate(actor kernel.Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewForbiddenRoleError("reinstate a listing", actor.Role())
	}

	newStatus, err := l.status.Reinstate()
	if err != nil {
		return err
	}

	l.status = newStatus
	l.updatedAt = now
	l.RaiseDomainEvent(ReinstatedEvent{
		BaseEvent: ddd.NewBaseEvent(ReinstatedEventName, l.id.Bytes(), now),
		ListingID: l.id,
	})
	return nil
}

func (l *Listing) ensureManagedBy(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.CanManage(l.ownerID) {
		return errs.NewForbiddenError("listing", l.id, actor.ID())
	}
	return nil
}

func (l *Listing) params() Params {
	return Params{
		Origin:         l.terms.origin,
		Destination:    l.terms.destination,
		Stops:          l.StopNames(),
		DepartureAt:    l.terms.departureAt,
		ArrivalAt:      l.terms.arrivalAt,
		MaxDimensions:  l.MaxDimensions(),
		MaxWeight:      l.MaxWeight(),
		CapacityVolume: l.terms.capacityVolume,
		Price:          l.terms.price,
		Conditions:     l.Conditions(),
		Seats:          l.terms.seats,
		Urgent:         l.terms.urgent,
	}
}

func (p Params) merge(patch Patch) Params {
	if patch.Origin != nil {
		p.Origin = *patch.Origin
	}
	if patch.Destination != nil {
		p.Destination = *patch.Destination
	}
	if patch.Stops != nil {
		p.Stops = *patch.Stops
	}
	if patch.DepartureAt != nil {
		p.DepartureAt = *patch.DepartureAt
	}
	if patch.ArrivalAt != nil {
		p.ArrivalAt = *patch.ArrivalAt
	}
	if patch.MaxDimensions != nil {
		p.MaxDimensions = patch.MaxDimensions
	}
	if patch.MaxWeight != nil {
		p.MaxWeight = patch.MaxWeight
	}
	if patch.CapacityVolume != nil {
		p.CapacityVolume = *patch.CapacityVolume
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Conditions != nil {
		p.Conditions = patch.Conditions
	}
	if patch.Seats != nil {
		p.Seats = *patch.Seats
	}
	if patch.Urgent != nil {
		p.Urgent = *patch.Urgent
	}
	return p
}

func newTerms(p Params) (terms, error) {
	var t terms

	if err := errors.Join(
		t.setRoute(p.Origin, p.Destination, p.Stops),
		t.setSchedule(p.DepartureAt, p.ArrivalAt),
		t.setLimits(p.MaxDimensions, p.MaxWeight),
		t.setCommercial(p.CapacityVolume, p.Price, p.Seats),
	); err != nil {
		return terms{}, err
	}

	t.conditions = maps.Clone(p.Conditions)
	if t.conditions == nil {
		t.conditions = map[string]string{}
	}
	t.urgent = p.Urgent

	return t, nil
}

func (t *terms) setRoute(origin, destination kernel.Place, stopNames []string) error {
	stops, stopsErr := NormalizeStops(stopNames)
	if err := errors.Join(origin.Validate(), destination.Validate(), stopsErr); err != nil {
		return err
	}

	t.origin = origin
	t.destination = destination
	t.stops = stops
	return nil
}

func (t *terms) setSchedule(departureAt, arrivalAt time.Time) error {
	if departureAt.IsZero() {
		return errs.NewValueIsRequiredError("departure time")
	}

	t.departureAt = departureAt
	t.arrivalAt = arrivalAt
	return nil
}

// checkPlannedArrival applies to carrier-supplied terms only. A completed listing
// stores its real arrival, which may precede the planned departure.
func (t terms) checkPlannedArrival() error {
	if !t.arrivalAt.IsZero() && t.arrivalAt.Before(t.departureAt) {
		return errs.NewValueIsInvalidErrorWithCause("arrival time",
			fmt.Errorf("%s is before departure %s",
				t.arrivalAt.Format(time.RFC3339), t.departureAt.Format(time.RFC3339)))
	}
	return nil
}

func (t *terms) setLimits(maxDimensions *kernel.Dimensions, maxWeight *float64) error {
	if maxDimensions != nil {
		if err := maxDimensions.Validate(); err != nil {
			return err
		}
	}
	if maxWeight != nil && !(*maxWeight > 0) {
		return errs.NewValueIsInvalidErrorWithCause("max weight", fmt.Errorf("%g is not greater than 0", *maxWeight))
	}

	t.maxDimensions = copyPtr(maxDimensions)
	t.maxWeight = copyPtr(maxWeight)
	return nil
}

func (t *terms) setCommercial(capacityVolume, price float64, seats int) error {
	var errList []error
	if capacityVolume < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("capacity volume",
			fmt.Errorf("%g is negative", capacityVolume)))
	}
	if price < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%g is negative", price)))
	}
	if seats < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("seats", fmt.Errorf("%d is negative", seats)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	if seats == 0 {
		seats = 1
	}
	t.capacityVolume = capacityVolume
	t.price = price
	t.seats = seats
	return nil
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
