// Package http exposes the booking engine over HTTP/JSON with echo.
package http

import (
	"context"
	"iter"
	"log/slog"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/history"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/trip"

	"github.com/labstack/echo/v4"
)

type (
	CreateListingHandler interface {
		Handle(ctx context.Context, cmd commands.CreateListingCommand) (*listing.Listing, error)
	}
	UpdateListingHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateListingCommand) (*listing.Listing, error)
	}
	ChangeListingStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeListingStatusCommand) (*listing.Listing, error)
	}
	CreateRequestHandler interface {
		Handle(ctx context.Context, cmd commands.CreateRequestCommand) (commands.PlacedRequest, error)
	}
	TransitionRequestHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionRequestCommand) (*request.TransportRequest, error)
	}
	RemoveRequestHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveRequestCommand) error
	}
	ChangeTripStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeTripStatusCommand) (*trip.Trip, error)
	}
	ReportPositionHandler interface {
		Handle(ctx context.Context, cmd commands.ReportPositionCommand) error
	}
	ReportIncidentHandler interface {
		Handle(ctx context.Context, cmd commands.ReportIncidentCommand) (trip.Incident, error)
	}

	GetListingHandler interface {
		Handle(ctx context.Context, query queries.GetListingQuery) (queries.GetListingQueryResponse, error)
	}
	GetRequestHandler interface {
		Handle(ctx context.Context, query queries.GetRequestQuery) (queries.GetRequestQueryResponse, error)
	}
	GetTrackHandler interface {
		Handle(ctx context.Context, query queries.GetTrackQuery) (queries.GetTrackQueryResponse, error)
	}
	GetTripByListingHandler interface {
		Handle(ctx context.Context, query queries.GetTripByListingQuery) (queries.GetTripByListingQueryResponse, error)
	}
	GetHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetHistoryQuery) (iter.Seq[history.Item], error)
	}
)

// Handlers groups the use cases the API delegates to.
type Handlers struct {
	CreateListing       CreateListingHandler
	UpdateListing       UpdateListingHandler
	ChangeListingStatus ChangeListingStatusHandler
	CreateRequest       CreateRequestHandler
	TransitionRequest   TransitionRequestHandler
	RemoveRequest       RemoveRequestHandler
	ChangeTripStatus    ChangeTripStatusHandler
	ReportPosition      ReportPositionHandler
	ReportIncident      ReportIncidentHandler

	GetListing       GetListingHandler
	GetRequest       GetRequestHandler
	GetTrack         GetTrackHandler
	GetTripByListing GetTripByListingHandler
	GetHistory       GetHistoryHandler
}

// Server translates HTTP requests into commands and queries. Every route
// requires an authenticated actor.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http_server")}
}

// Register mounts the API routes on g, which is expected to carry the
// authentication middleware.
func (s *Server) Register(g *echo.Group) {
	g.POST("/listings", s.CreateListing)
	g.GET("/listings/:id", s.GetListing)
	g.PATCH("/listings/:id", s.UpdateListing)
	g.POST("/listings/:id/complete", s.changeListingStatus(commands.CompleteListing))
	g.POST("/listings/:id/cancel", s.changeListingStatus(commands.CancelListing))
	g.POST("/listings/:id/suspend", s.changeListingStatus(commands.SuspendListing))
	g.POST("/listings/:id/reinstate", s.changeListingStatus(commands.ReinstateListing))
	g.GET("/listings/:id/trip", s.GetTripByListing)

	g.POST("/requests", s.CreateRequest)
	g.GET("/requests/:id", s.GetRequest)
	g.POST("/requests/:id/transition", s.TransitionRequest)
	g.DELETE("/requests/:id", s.RemoveRequest)

	g.GET("/trips/:id/track", s.GetTrack)
	g.POST("/trips/:id/start", s.changeTripStatus(commands.StartTrip))
	g.POST("/trips/:id/finish", s.changeTripStatus(commands.FinishTrip))
	g.POST("/trips/:id/cancel", s.changeTripStatus(commands.CancelTrip))
	g.POST("/trips/:id/postpone", s.changeTripStatus(commands.PostponeTrip))
	g.POST("/trips/:id/positions", s.ReportPosition)
	g.POST("/trips/:id/incidents", s.ReportIncident)

	g.GET("/users/me/history", s.GetHistory)
}
