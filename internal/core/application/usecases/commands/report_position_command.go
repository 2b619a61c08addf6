package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/guard"
)

var ErrReportPositionCommandIsNotConstructed = errors.New(
	"ReportPositionCommand must be created via NewReportPositionCommand constructor",
)

// ReportPositionCommand appends one position to a trip's history. Reporter is nil
// for device reports coming from the message bus.
type ReportPositionCommand struct { //nolint:recvcheck //using for validation
	tripID   kernel.UUID
	reporter *kernel.Actor
	position trip.Position

	guard guard.ConstructorGuard
}

func NewReportPositionCommand(
	tripID kernel.UUID,
	reporter *kernel.Actor,
	latitude, longitude float64,
	reportedAt time.Time,
) (ReportPositionCommand, error) {
	cmd := ReportPositionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setReporter(reporter),
		cmd.setPosition(latitude, longitude, reportedAt),
	); err != nil {
		return ReportPositionCommand{}, err
	}

	return cmd, nil
}

func (c ReportPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportPositionCommandIsNotConstructed)
}

func (c ReportPositionCommand) TripID() kernel.UUID     { return c.tripID }
func (c ReportPositionCommand) Reporter() *kernel.Actor { return c.reporter }
func (c ReportPositionCommand) Position() trip.Position { return c.position }

func (c *ReportPositionCommand) setTripID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tripID = id
	return nil
}

func (c *ReportPositionCommand) setReporter(reporter *kernel.Actor) error {
	if reporter == nil {
		return nil
	}
	if err := reporter.Validate(); err != nil {
		return err
	}
	r := *reporter
	c.reporter = &r
	return nil
}

func (c *ReportPositionCommand) setPosition(latitude, longitude float64, reportedAt time.Time) error {
	coords, err := kernel.NewCoordinates(latitude, longitude)
	if err != nil {
		return err
	}
	position, err := trip.NewPosition(coords, reportedAt)
	if err != nil {
		return err
	}
	c.position = position
	return nil
}
