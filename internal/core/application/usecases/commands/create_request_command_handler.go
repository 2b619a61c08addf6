package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/services"
)

// PlacedRequest is the view returned after a successful placement: the new
// request, who placed it and the listing it references.
type PlacedRequest struct {
	Request   *request.TransportRequest
	Requester kernel.Actor
	Listing   *listing.Listing
}

// CreateRequestCommandHandler places a pending transport request.
//
// Failures, in the order they are checked:
//   - *errs.ForbiddenRoleError unless the requester is a shipper
//   - *errs.ObjectNotFoundError for an unknown listing
//   - *errs.InvalidStateError unless the listing is active
//   - *errs.SelfBookingError when the requester owns the listing
//   - *errs.DuplicateRequestError when an open request already exists
//   - *errs.CapacityExceededError when the parcel does not fit
//
// Example:
//
//	placed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrDuplicateRequest):
//	    // the shipper already waits for an answer on this listing
//	case err != nil:
//	    return err
//	}
//	fmt.Println(placed.Request.ID(), placed.Listing.OwnerID())
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	placer     services.RequestPlacer
}

func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		placer:     services.NewRequestPlacer(services.NewCapacityValidator()),
	}
}

func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (PlacedRequest, error) {
	if err := cmd.Validate(); err != nil {
		return PlacedRequest{}, err
	}
	if err := request.EnsureCanPlace(cmd.Requester()); err != nil {
		return PlacedRequest{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlacedRequest{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	l, err := uow.ListingRepository().Get(ctx, cmd.ListingID())
	if err != nil {
		return PlacedRequest{}, err
	}

	requests := uow.RequestRepository()
	hasOpen, err := requests.HasOpen(ctx, cmd.Requester().ID(), l.ID())
	if err != nil {
		return PlacedRequest{}, err
	}

	r, err := h.placer.Place(cmd.RequestID(), cmd.Requester(), l, hasOpen, cmd.Details(), time.Now().UTC())
	if err != nil {
		return PlacedRequest{}, err
	}

	if err = requests.Add(ctx, r); err != nil {
		return PlacedRequest{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlacedRequest{}, err
	}

	return PlacedRequest{Request: r, Requester: cmd.Requester(), Listing: l}, nil
}
