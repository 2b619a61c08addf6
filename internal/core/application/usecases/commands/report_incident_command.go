package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/guard"
)

var ErrReportIncidentCommandIsNotConstructed = errors.New(
	"ReportIncidentCommand must be created via NewReportIncidentCommand constructor",
)

type ReportIncidentCommand struct { //nolint:recvcheck //using for validation
	tripID   kernel.UUID
	actor    kernel.Actor
	incident trip.Incident

	guard guard.ConstructorGuard
}

// NewReportIncidentCommand builds the incident with a fresh identifier. severity
// is one of low, medium, high or critical.
func NewReportIncidentCommand(
	tripID kernel.UUID,
	actor kernel.Actor,
	kind, description, severity string,
	occurredAt time.Time,
) (ReportIncidentCommand, error) {
	sev, sevErr := trip.ParseSeverity(severity)
	if err := errors.Join(tripID.Validate(), actor.Validate(), sevErr); err != nil {
		return ReportIncidentCommand{}, err
	}

	incident, err := trip.NewIncident(kernel.NewUUID(), kind, description, sev, occurredAt)
	if err != nil {
		return ReportIncidentCommand{}, err
	}

	return ReportIncidentCommand{
		tripID:   tripID,
		actor:    actor,
		incident: incident,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReportIncidentCommand) Validate() error {
	return c.guard.Validate(ErrReportIncidentCommandIsNotConstructed)
}

func (c ReportIncidentCommand) TripID() kernel.UUID     { return c.tripID }
func (c ReportIncidentCommand) Actor() kernel.Actor     { return c.actor }
func (c ReportIncidentCommand) Incident() trip.Incident { return c.incident }
