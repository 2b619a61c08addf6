package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/request"
)

// TransitionRequestCommandHandler lets the listing owner or an admin answer and
// progress a transport request. Accepting a request attaches it to the listing's
// trip through the request.status_changed event handler.
type TransitionRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewTransitionRequestCommandHandler(uowFactory RequestUoWFactory) TransitionRequestCommandHandler {
	return TransitionRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *errs.ObjectNotFoundError when the request or its listing is
// missing, then the authorization and state machine errors of the request.
func (h TransitionRequestCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionRequestCommand,
) (*request.TransportRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	r, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	l, err := uow.ListingRepository().Get(ctx, r.ListingID())
	if err != nil {
		return nil, err
	}

	err = r.Transition(cmd.Actor(), l.OwnerID(), cmd.To(), cmd.Comment(), cmd.RefusalReason(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = requests.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
