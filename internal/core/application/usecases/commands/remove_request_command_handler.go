package commands

import (
	"context"
	"time"
)

type RemoveRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewRemoveRequestCommandHandler(uowFactory RequestUoWFactory) RemoveRequestCommandHandler {
	return RemoveRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *errs.ObjectNotFoundError, *errs.ForbiddenError unless the actor
// is the requester or an admin, and *errs.InvalidStateError unless the request is
// still pending.
func (h RemoveRequestCommandHandler) Handle(ctx context.Context, cmd RemoveRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	r, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = r.Withdraw(cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = requests.Delete(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
