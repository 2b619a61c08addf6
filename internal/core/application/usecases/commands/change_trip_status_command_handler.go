package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/trip"
)

type ChangeTripStatusCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewChangeTripStatusCommandHandler(uowFactory TripUoWFactory) ChangeTripStatusCommandHandler {
	return ChangeTripStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown trip, *errs.ForbiddenError
// unless the actor is the carrier or an admin, and the trip state machine errors.
func (h ChangeTripStatusCommandHandler) Handle(ctx context.Context, cmd ChangeTripStatusCommand) (*trip.Trip, error) {
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

	repo := uow.TripRepository()
	t, err := repo.Get(ctx, cmd.TripID())
	if err != nil {
		return nil, err
	}

	if err = cmd.Action().Apply(t, cmd.Actor(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
