package commands

import (
	"context"
)

// ReportPositionCommandHandler records a trip position. It only inserts the new
// position and moves the current one, so concurrent reports and status changes
// never overwrite each other.
type ReportPositionCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewReportPositionCommandHandler(uowFactory TripUoWFactory) ReportPositionCommandHandler {
	return ReportPositionCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ReportPositionCommandHandler) Handle(ctx context.Context, cmd ReportPositionCommand) error {
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

	repo := uow.TripRepository()
	t, err := repo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	if err = t.ReportPosition(cmd.Reporter(), cmd.Position()); err != nil {
		return err
	}

	if err = repo.AppendPositions(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
