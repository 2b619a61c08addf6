package request

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/ddd"
	"freight/internal/pkg/errs"
)

var (
	// ErrTransportRequestIsNotConstructed is returned when a TransportRequest was not
	// created through NewTransportRequest or RestoreTransportRequest.
	ErrTransportRequestIsNotConstructed = errors.New(
		"TransportRequest must be created via NewTransportRequest constructor")
)

// Details is what a shipper submits with a request. Contacts and windows are optional.
type Details struct {
	Parcel          Parcel
	Pickup          kernel.Place
	Delivery        kernel.Place
	PickupContact   Contact
	DeliveryContact Contact
	PickupWindow    Window
	DeliveryWindow  Window
}

func (d Details) validate() error {
	return errors.Join(d.Parcel.Validate(), d.Pickup.Validate(), d.Delivery.Validate())
}

// TransportRequest is a shipper's ask to move a parcel on a listing.
//
// TransportRequest follows these invariants:
//   - The requester is a shipper
//   - Status changes follow the transition table in Status.TransitionTo
//   - Only the listing owner or an admin drives transitions
//   - A refusal reason is kept only for refused requests
type TransportRequest struct {
	ddd.BaseAggregate

	id          kernel.UUID
	requesterID kernel.UUID
	listingID   kernel.UUID
	details     Details

	status        Status
	respondedAt   *time.Time
	comment       string
	refusalReason string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// EnsureCanPlace returns an *errs.ForbiddenRoleError unless actor is a shipper.
func EnsureCanPlace(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.Shipper {
		return errs.NewForbiddenRoleError("place a transport request", actor.Role())
	}
	return nil
}

// NewTransportRequest creates a pending request and raises PlacedEvent. It does not
// look at the listing; services.RequestPlacer runs the listing-side checks first.
func NewTransportRequest(
	id kernel.UUID,
	requester kernel.Actor,
	listingID kernel.UUID,
	details Details,
	now time.Time,
) (*TransportRequest, error) {
	if err := EnsureCanPlace(requester); err != nil {
		return nil, err
	}
	if err := errors.Join(id.Validate(), listingID.Validate(), details.validate()); err != nil {
		return nil, err
	}

	r := &TransportRequest{
		id:            id,
		requesterID:   requester.ID(),
		listingID:     listingID,
		details:       details,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	r.RaiseDomainEvent(PlacedEvent{
		BaseEvent:   ddd.NewBaseEvent(PlacedEventName, id.Bytes(), now),
		RequestID:   id,
		ListingID:   listingID,
		RequesterID: requester.ID(),
		WeightKg:    details.Parcel.Weight(),
	})

	return r, nil
}

// RestoreTransportRequest rebuilds a request from storage without raising events.
func RestoreTransportRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	listingID kernel.UUID,
	details Details,
	status Status,
	respondedAt *time.Time,
	comment string,
	refusalReason string,
	createdAt time.Time,
	updatedAt time.Time,
) (*TransportRequest, error) {
	if err := errors.Join(
		id.Validate(),
		requesterID.Validate(),
		listingID.Validate(),
		details.validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &TransportRequest{
		id:            id,
		requesterID:   requesterID,
		listingID:     listingID,
		details:       details,
		status:        status,
		respondedAt:   respondedAt,
		comment:       comment,
		refusalReason: refusalReason,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (r *TransportRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrTransportRequestIsNotConstructed
	}
	return nil
}

func (r *TransportRequest) ID() kernel.UUID          { return r.id }
func (r *TransportRequest) RequesterID() kernel.UUID { return r.requesterID }
func (r *TransportRequest) ListingID() kernel.UUID   { return r.listingID }
func (r *TransportRequest) Details() Details         { return r.details }
func (r *TransportRequest) Status() Status           { return r.status }
func (r *TransportRequest) Comment() string          { return r.comment }
func (r *TransportRequest) RefusalReason() string    { return r.refusalReason }
func (r *TransportRequest) CreatedAt() time.Time     { return r.createdAt }
func (r *TransportRequest) UpdatedAt() time.Time     { return r.updatedAt }

// RespondedAt is nil until the first transition.
func (r *TransportRequest) RespondedAt() *time.Time {
	if r.respondedAt == nil {
		return nil
	}
	t := *r.respondedAt
	return &t
}

// Transition moves the request to status to on behalf of actor.
//
// Checks run in order:
//   - *errs.ForbiddenError unless actor owns the listing or is an admin
//   - *errs.InvalidStateError if the request is delivered or cancelled
//   - *errs.IllegalTransitionError for any edge outside the transition table
//
// On success the response time is set to now, a non-nil comment is stored and a
// non-nil refusal reason is stored only when the new status is Refused.
func (r *TransportRequest) Transition(
	actor kernel.Actor,
	listingOwnerID kernel.UUID,
	to Status,
	comment *string,
	refusalReason *string,
	now time.Time,
) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.CanManage(listingOwnerID) {
		return errs.NewForbiddenError("request", r.id, actor.ID())
	}

	newStatus, err := r.status.TransitionTo(to)
	if err != nil {
		return err
	}

	from := r.status
	r.status = newStatus
	r.respondedAt = &now
	r.updatedAt = now
	if comment != nil {
		r.comment = *comment
	}
	if newStatus == Refused && refusalReason != nil {
		r.refusalReason = *refusalReason
	}

	r.RaiseDomainEvent(StatusChangedEvent{
		BaseEvent:     ddd.NewBaseEvent(StatusChangedEventName, r.id.Bytes(), now),
		RequestID:     r.id,
		ListingID:     r.listingID,
		From:          from.String(),
		To:            newStatus.String(),
		ChangedBy:     actor.ID(),
		RefusalReason: r.refusalReason,
	})
	return nil
}

// Withdraw prepares the request for permanent removal. Only the requester or an
// admin may withdraw, and only while the request is pending.
func (r *TransportRequest) Withdraw(actor kernel.Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsAdmin() && !actor.Owns(r.requesterID) {
		return errs.NewForbiddenError("request", r.id, actor.ID())
	}
	if r.status != Pending {
		return errs.NewInvalidStateError("request", r.status, "remove")
	}

	r.RaiseDomainEvent(WithdrawnEvent{
		BaseEvent: ddd.NewBaseEvent(WithdrawnEventName, r.id.Bytes(), now),
		RequestID: r.id,
		ListingID: r.listingID,
	})
	return nil
}

// IsVisibleTo reports whether actor may read the request: its requester, the
// listing owner or an admin.
func (r *TransportRequest) IsVisibleTo(actor kernel.Actor, listingOwnerID kernel.UUID) bool {
	return actor.IsAdmin() || actor.Owns(r.requesterID) || actor.Owns(listingOwnerID)
}
