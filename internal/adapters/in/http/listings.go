package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// pathID parses the :id route parameter.
func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}

// CreateListing handles POST /api/v1/listings.
func (s *Server) CreateListing(c echo.Context) error {
	var body createListingBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	params, err := body.toParams()
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateListingCommand(kernel.NewUUID(), actorFrom(c), params)
	if err != nil {
		return s.writeError(c, err)
	}
	l, err := s.h.CreateListing.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, listingView(l))
}

// GetListing handles GET /api/v1/listings/:id.
func (s *Server) GetListing(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetListingQuery(id)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetListing.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateListing handles PATCH /api/v1/listings/:id.
func (s *Server) UpdateListing(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	var body updateListingBody
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	patch, err := body.toPatch()
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewUpdateListingCommand(id, actorFrom(c), patch)
	if err != nil {
		return s.writeError(c, err)
	}
	l, err := s.h.UpdateListing.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, listingView(l))
}

// changeListingStatus serves POST /api/v1/listings/:id/{complete,cancel,suspend,reinstate}.
func (s *Server) changeListingStatus(action commands.ListingAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return s.writeError(c, err)
		}
		cmd, err := commands.NewChangeListingStatusCommand(id, actorFrom(c), action)
		if err != nil {
			return s.writeError(c, err)
		}
		l, err := s.h.ChangeListingStatus.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.writeError(c, err)
		}

		return c.JSON(http.StatusOK, listingView(l))
	}
}

// GetTripByListing handles GET /api/v1/listings/:id/trip.
func (s *Server) GetTripByListing(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetTripByListingQuery(id)
	if err != nil {
		return s.writeError(c, err)
	}
	resp, err := s.h.GetTripByListing.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
