package trip

import (
	"errors"
	"slices"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/ddd"
	"freight/internal/pkg/errs"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip was not created through NewTrip or RestoreTrip.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip constructor")
)

// Schedule holds the planned and actual timestamps of a trip.
type Schedule struct {
	PlannedDeparture time.Time
	ActualDeparture  *time.Time
	ActualArrival    *time.Time
}

// Trip is the execution record of a listing.
//
// Trip follows these invariants:
//   - There is at most one trip per listing
//   - The position history is append-only and kept in arrival order
//   - Status changes follow the Status transition methods
//   - Only the carrier or an admin changes the status or logs incidents
type Trip struct {
	ddd.BaseAggregate

	id         kernel.UUID
	listingID  kernel.UUID
	carrierID  kernel.UUID
	requestIDs []kernel.UUID
	status     Status
	schedule   Schedule

	distanceKm float64
	cost       float64
	rating     *float64

	current   *Position
	history   []Position
	persisted int
	incidents []Incident

	isConstructed bool
}

// NewTrip creates a planned trip for a freshly published listing. cost is the
// listing price.
func NewTrip(id, listingID, carrierID kernel.UUID, plannedDeparture time.Time, cost float64) (*Trip, error) {
	if err := errors.Join(id.Validate(), listingID.Validate(), carrierID.Validate()); err != nil {
		return nil, err
	}

	return &Trip{
		id:            id,
		listingID:     listingID,
		carrierID:     carrierID,
		status:        Planned,
		schedule:      Schedule{PlannedDeparture: plannedDeparture},
		cost:          cost,
		isConstructed: true,
	}, nil
}

// RestoreTrip rebuilds a trip from storage. history must be in arrival order;
// it is treated as already persisted.
func RestoreTrip(
	id, listingID, carrierID kernel.UUID,
	requestIDs []kernel.UUID,
	status Status,
	schedule Schedule,
	distanceKm, cost float64,
	rating *float64,
	current *Position,
	history []Position,
	incidents []Incident,
) (*Trip, error) {
	if err := errors.Join(id.Validate(), listingID.Validate(), carrierID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Trip{
		id:            id,
		listingID:     listingID,
		carrierID:     carrierID,
		requestIDs:    slices.Clone(requestIDs),
		status:        status,
		schedule:      schedule,
		distanceKm:    distanceKm,
		cost:          cost,
		rating:        rating,
		current:       current,
		history:       slices.Clone(history),
		persisted:     len(history),
		incidents:     slices.Clone(incidents),
		isConstructed: true,
	}, nil
}

func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

func (t *Trip) ID() kernel.UUID           { return t.id }
func (t *Trip) ListingID() kernel.UUID    { return t.listingID }
func (t *Trip) CarrierID() kernel.UUID    { return t.carrierID }
func (t *Trip) RequestIDs() []kernel.UUID { return slices.Clone(t.requestIDs) }
func (t *Trip) Status() Status            { return t.status }
func (t *Trip) Schedule() Schedule        { return t.schedule }
func (t *Trip) DistanceKm() float64       { return t.distanceKm }
func (t *Trip) Cost() float64             { return t.cost }
func (t *Trip) Rating() *float64          { return t.rating }
func (t *Trip) History() []Position       { return slices.Clone(t.history) }
func (t *Trip) Incidents() []Incident     { return slices.Clone(t.incidents) }

// CurrentPosition is nil until the first report.
func (t *Trip) CurrentPosition() *Position {
	if t.current == nil {
		return nil
	}
	p := *t.current
	return &p
}

// UnsavedPositions returns the positions reported since the trip was loaded.
// Repositories insert only these so concurrent reporters never overwrite each other.
func (t *Trip) UnsavedPositions() []Position {
	return slices.Clone(t.history[t.persisted:])
}

// MarkPositionsSaved is called by the repository after a successful insert.
func (t *Trip) MarkPositionsSaved() {
	t.persisted = len(t.history)
}

// AttachRequest records an accepted transport request. Attaching the same
// request twice has no effect.
func (t *Trip) AttachRequest(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	if slices.ContainsFunc(t.requestIDs, requestID.IsEqual) {
		return nil
	}
	t.requestIDs = append(t.requestIDs, requestID)
	return nil
}

// Start puts the trip in progress. The first start stamps the actual departure.
func (t *Trip) Start(actor kernel.Actor, now time.Time) error {
	return t.changeStatus(actor, now, Status.Start, func() {
		if t.schedule.ActualDeparture == nil {
			t.schedule.ActualDeparture = &now
		}
	})
}

// Finish completes an in-progress trip, stamps the arrival and computes the
// distance covered by the position history.
func (t *Trip) Finish(actor kernel.Actor, now time.Time) error {
	return t.changeStatus(actor, now, Status.Finish, func() {
		t.schedule.ActualArrival = &now
		t.distanceKm = t.travelledKm()
	})
}

func (t *Trip) Cancel(actor kernel.Actor, now time.Time) error {
	return t.changeStatus(actor, now, Status.Cancel, nil)
}

func (t *Trip) Postpone(actor kernel.Actor, now time.Time) error {
	return t.changeStatus(actor, now, Status.Postpone, nil)
}

// ReportPosition appends a position and makes it the current one. It is accepted
// in every state and does not reorder out-of-order timestamps. reporter is nil for
// device reports; when set it must be the carrier or an admin.
func (t *Trip) ReportPosition(reporter *kernel.Actor, position Position) error {
	if reporter != nil {
		if err := t.ensureManagedBy(*reporter); err != nil {
			return err
		}
	}
	if err := position.coords.Validate(); err != nil {
		return err
	}

	t.history = append(t.history, position)
	t.current = &position
	return nil
}

func (t *Trip) ReportIncident(actor kernel.Actor, incident Incident) error {
	if err := t.ensureManagedBy(actor); err != nil {
		return err
	}
	if err := incident.id.Validate(); err != nil {
		return err
	}

	t.incidents = append(t.incidents, incident)
	t.RaiseDomainEvent(IncidentReportedEvent{
		BaseEvent:  ddd.NewBaseEvent(IncidentReportedEventName, t.id.Bytes(), incident.occurredAt),
		TripID:     t.id,
		IncidentID: incident.id,
		Type:       incident.kind,
		Severity:   incident.severity.String(),
	})
	return nil
}

func (t *Trip) changeStatus(
	actor kernel.Actor,
	now time.Time,
	transition func(Status) (Status, error),
	apply func(),
) error {
	if err := t.ensureManagedBy(actor); err != nil {
		return err
	}

	newStatus, err := transition(t.status)
	if err != nil {
		return err
	}

	from := t.status
	t.status = newStatus
	if apply != nil {
		apply()
	}

	t.RaiseDomainEvent(StatusChangedEvent{
		BaseEvent: ddd.NewBaseEvent(StatusChangedEventName, t.id.Bytes(), now),
		TripID:    t.id,
		ListingID: t.listingID,
		From:      from.String(),
		To:        newStatus.String(),
		ChangedBy: actor.ID(),
	})
	return nil
}

func (t *Trip) ensureManagedBy(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.CanManage(t.carrierID) {
		return errs.NewForbiddenError("trip", t.id, actor.ID())
	}
	return nil
}

func (t *Trip) travelledKm() float64 {
	var total float64
	for i := 1; i < len(t.history); i++ {
		d, err := t.history[i-1].coords.DistanceKm(t.history[i].coords)
		if err != nil {
			continue
		}
		total += d
	}
	return total
}
