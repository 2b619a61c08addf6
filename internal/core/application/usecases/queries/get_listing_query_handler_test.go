package queries_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

func (suite *QueriesTestSuite) TestGetListing_ReturnsStoredTerms() {
	ctx := context.Background()
	carrier := suite.actor(kernel.Carrier)
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	l := suite.addListing(carrier, at)

	query, err := queries.NewGetListingQuery(l.ID())
	suite.Require().NoError(err)

	resp, err := queries.NewGetListingQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(l.ID(), resp.ID)
	suite.Equal(carrier.ID(), resp.OwnerID)
	suite.Equal("Casablanca", resp.Origin.Name)
	suite.Require().NotNil(resp.Origin.Latitude)
	suite.InDelta(33.5731, *resp.Origin.Latitude, 1e-9)
	suite.Equal([]string{"Mohammedia", "Bouznika"}, resp.Stops)
	suite.Equal(map[string]string{"pets": "no"}, resp.Conditions)
	suite.Equal(1, resp.Seats)
	suite.Equal("active", resp.Status)
	suite.Require().NotNil(resp.MaxDimensions)
	suite.InDelta(4.0, resp.MaxDimensions.Length, 1e-9)
	suite.True(at.Equal(resp.DepartureAt))
	suite.Nil(resp.ArrivalAt)
}

func (suite *QueriesTestSuite) TestGetListing_UnknownID_ReturnsNotFound() {
	query, err := queries.NewGetListingQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetListingQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetListing_InvalidQuery_ReturnsError() {
	_, err := queries.NewGetListingQueryHandler(suite.db).Handle(context.Background(), queries.GetListingQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetListingQueryIsNotConstructed)
}
