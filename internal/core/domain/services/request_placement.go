package services

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"
)

// RequestPlacer runs the listing-side checks for a new transport request and
// builds the pending request when they pass.
//
// Checks run in this order and the first failure is returned:
//   - the requester is a shipper (*errs.ForbiddenRoleError)
//   - the listing is active (*errs.InvalidStateError)
//   - the requester does not own the listing (*errs.SelfBookingError)
//   - the requester holds no open request on the listing (*errs.DuplicateRequestError)
//   - the parcel fits the listing maxima (*errs.CapacityExceededError)
//
// The duplicate check only sees committed requests; the store's unique index on
// open requests rejects the concurrent case at insert time.
type RequestPlacer struct {
	capacity CapacityValidator
}

func NewRequestPlacer(capacity CapacityValidator) RequestPlacer {
	return RequestPlacer{capacity: capacity}
}

// Place returns the new pending request. hasOpenRequest reports whether requester
// already holds a pending or accepted request on l.
func (p RequestPlacer) Place(
	id kernel.UUID,
	requester kernel.Actor,
	l *listing.Listing,
	hasOpenRequest bool,
	details request.Details,
	now time.Time,
) (*request.TransportRequest, error) {
	if err := request.EnsureCanPlace(requester); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := l.EnsureAcceptsRequests(); err != nil {
		return nil, err
	}
	if requester.Owns(l.OwnerID()) {
		return nil, errs.NewSelfBookingError(l.ID())
	}
	if hasOpenRequest {
		return nil, errs.NewDuplicateRequestError(requester.ID(), l.ID())
	}

	parcel := details.Parcel
	if err := parcel.Validate(); err != nil {
		return nil, err
	}
	if err := p.capacity.Check(parcel.Weight(), parcel.Dimensions(), l.MaxWeight(), l.MaxDimensions()); err != nil {
		return nil, err
	}

	return request.NewTransportRequest(id, requester, l.ID(), details, now)
}
