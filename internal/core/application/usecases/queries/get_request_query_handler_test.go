package queries_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

func (suite *QueriesTestSuite) TestGetRequest_VisibleToRequesterOwnerAndAdmin() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	carrier, shipper := suite.actor(kernel.Carrier), suite.actor(kernel.Shipper)
	l := suite.addListing(carrier, at)
	r := suite.addRequest(shipper, l, at)
	handler := queries.NewGetRequestQueryHandler(suite.db)

	for _, viewer := range []kernel.Actor{shipper, carrier, suite.actor(kernel.Admin)} {
		query, err := queries.NewGetRequestQuery(r.ID(), viewer)
		suite.Require().NoError(err)

		resp, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Equal(r.ID(), resp.ID)
		suite.Equal(carrier.ID(), resp.ListingOwnerID)
		suite.Equal("pending", resp.Status)
		suite.Equal("two chairs", resp.Parcel.Description)
		suite.Equal("Amina", resp.PickupContact.Name)
		suite.Nil(resp.RespondedAt)
	}
}

func (suite *QueriesTestSuite) TestGetRequest_StrangerIsForbidden() {
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	l := suite.addListing(suite.actor(kernel.Carrier), at)
	r := suite.addRequest(suite.actor(kernel.Shipper), l, at)

	query, err := queries.NewGetRequestQuery(r.ID(), suite.actor(kernel.Shipper))
	suite.Require().NoError(err)

	_, err = queries.NewGetRequestQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesTestSuite) TestGetRequest_UnknownID_ReturnsNotFound() {
	query, err := queries.NewGetRequestQuery(kernel.NewUUID(), suite.actor(kernel.Admin))
	suite.Require().NoError(err)

	_, err = queries.NewGetRequestQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
