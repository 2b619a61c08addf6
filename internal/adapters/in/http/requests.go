package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/labstack/echo/v4"
)

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(c echo.Context) error {
	var body createRequestBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	listingID, err := kernel.UUIDFromString(body.ListingID)
	if err != nil {
		return s.writeError(c, err)
	}
	details, err := body.toDetails()
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), actorFrom(c), listingID, details)
	if err != nil {
		return s.writeError(c, err)
	}
	placed, err := s.h.CreateRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, placedView(placed))
}

// GetRequest handles GET /api/v1/requests/:id.
func (s *Server) GetRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	return s.renderRequest(c, id, http.StatusOK)
}

// TransitionRequest handles POST /api/v1/requests/:id/transition.
func (s *Server) TransitionRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var body transitionRequestBody
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	to, err := request.ParseStatus(body.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewTransitionRequestCommand(id, actorFrom(c), to, body.Comment, body.RefusalReason)
	if err != nil {
		return s.writeError(c, err)
	}
	if _, err = s.h.TransitionRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	// The read model carries the listing owner, which the command result lacks.
	return s.renderRequest(c, id, http.StatusOK)
}

// RemoveRequest handles DELETE /api/v1/requests/:id.
func (s *Server) RemoveRequest(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewRemoveRequestCommand(id, actorFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.RemoveRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) renderRequest(c echo.Context, id kernel.UUID, status int) error {
	query, err := queries.NewGetRequestQuery(id, actorFrom(c))
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(status, resp)
}
