package queries_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"
)

func (suite *QueriesTestSuite) position(lat, lon float64, at time.Time) trip.Position {
	coords, err := kernel.NewCoordinates(lat, lon)
	suite.Require().NoError(err)
	p, err := trip.NewPosition(coords, at)
	suite.Require().NoError(err)
	return p
}

func (suite *QueriesTestSuite) TestGetTrack_KeepsArrivalOrder() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	carrier := suite.actor(kernel.Carrier)
	tr := suite.addTrip(carrier, suite.addListing(carrier, at))

	later := suite.position(33.70, -7.36, at.Add(20*time.Minute))
	earlier := suite.position(33.60, -7.50, at.Add(10*time.Minute))
	suite.Require().NoError(tr.ReportPosition(nil, later))
	suite.Require().NoError(tr.ReportPosition(nil, earlier))
	suite.Require().NoError(suite.tripRepo.AppendPositions(ctx, tr))

	query, err := queries.NewGetTrackQuery(tr.ID())
	suite.Require().NoError(err)

	resp, err := queries.NewGetTrackQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("planned", resp.Status)
	suite.Require().Len(resp.History, 2)
	suite.True(later.ReportedAt().Equal(resp.History[0].ReportedAt))
	suite.True(earlier.ReportedAt().Equal(resp.History[1].ReportedAt))
	suite.Require().NotNil(resp.Current)
	suite.InDelta(33.60, resp.Current.Latitude, 1e-9)
}

func (suite *QueriesTestSuite) TestGetTrack_NoPositions_ReturnsEmptyHistory() {
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	carrier := suite.actor(kernel.Carrier)
	tr := suite.addTrip(carrier, suite.addListing(carrier, at))

	query, err := queries.NewGetTrackQuery(tr.ID())
	suite.Require().NoError(err)

	resp, err := queries.NewGetTrackQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(resp.History)
	suite.Empty(resp.History)
	suite.Nil(resp.Current)
}

func (suite *QueriesTestSuite) TestGetTrack_UnknownTrip_ReturnsNotFound() {
	query, err := queries.NewGetTrackQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetTrackQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetTripByListing_ReturnsTripWithIncidents() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	carrier := suite.actor(kernel.Carrier)
	l := suite.addListing(carrier, at)
	tr := suite.addTrip(carrier, l)

	incident, err := trip.NewIncident(kernel.NewUUID(), "delay", "roadworks", trip.Medium, at.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(tr.ReportIncident(carrier, incident))
	suite.Require().NoError(suite.tripRepo.Update(ctx, tr))

	query, err := queries.NewGetTripByListingQuery(l.ID())
	suite.Require().NoError(err)

	resp, err := queries.NewGetTripByListingQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(tr.ID(), resp.ID)
	suite.Equal(carrier.ID(), resp.CarrierID)
	suite.InDelta(1200.0, resp.Cost, 1e-9)
	suite.Empty(resp.RequestIDs)
	suite.Require().Len(resp.Incidents, 1)
	suite.Equal("medium", resp.Incidents[0].Severity)
	suite.Equal("delay", resp.Incidents[0].Type)
}

func (suite *QueriesTestSuite) TestGetTripByListing_NoTrip_ReturnsNotFound() {
	query, err := queries.NewGetTripByListingQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetTripByListingQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
