package commands

import (
	"context"

	"freight/internal/core/domain/model/trip"
)

type ReportIncidentCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewReportIncidentCommandHandler(uowFactory TripUoWFactory) ReportIncidentCommandHandler {
	return ReportIncidentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle appends the incident to the trip's log and returns it.
func (h ReportIncidentCommandHandler) Handle(ctx context.Context, cmd ReportIncidentCommand) (trip.Incident, error) {
	if err := cmd.Validate(); err != nil {
		return trip.Incident{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return trip.Incident{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TripRepository()
	t, err := repo.Get(ctx, cmd.TripID())
	if err != nil {
		return trip.Incident{}, err
	}

	if err = t.ReportIncident(cmd.Actor(), cmd.Incident()); err != nil {
		return trip.Incident{}, err
	}

	if err = repo.Update(ctx, t); err != nil {
		return trip.Incident{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return trip.Incident{}, err
	}

	return cmd.Incident(), nil
}
