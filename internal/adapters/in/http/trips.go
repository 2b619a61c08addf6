package http

import (
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetTrack handles GET /api/v1/trips/:id/track.
func (s *Server) GetTrack(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetTrackQuery(id)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetTrack.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) changeTripStatus(action commands.TripAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return s.writeError(c, err)
		}
		cmd, err := commands.NewChangeTripStatusCommand(id, actorFrom(c), action)
		if err != nil {
			return s.writeError(c, err)
		}
		t, err := s.h.ChangeTripStatus.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.writeError(c, err)
		}

		return c.JSON(http.StatusOK, tripView(t))
	}
}

// ReportPosition handles POST /api/v1/trips/:id/positions. The report time
// defaults to the time of receipt.
func (s *Server) ReportPosition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var body reportPositionBody
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	reportedAt := time.Now().UTC()
	if body.ReportedAt != nil {
		reportedAt = *body.ReportedAt
	}

	actor := actorFrom(c)
	cmd, err := commands.NewReportPositionCommand(id, &actor, body.Latitude, body.Longitude, reportedAt)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.ReportPosition.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReportIncident handles POST /api/v1/trips/:id/incidents.
func (s *Server) ReportIncident(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var body reportIncidentBody
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	occurredAt := time.Now().UTC()
	if body.OccurredAt != nil {
		occurredAt = *body.OccurredAt
	}

	cmd, err := commands.NewReportIncidentCommand(
		id, actorFrom(c), body.Type, body.Description, body.Severity, occurredAt)
	if err != nil {
		return s.writeError(c, err)
	}
	incident, err := s.h.ReportIncident.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, incidentView(incident))
}
