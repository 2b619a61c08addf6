package queries_test

import (
	"context"
	"slices"
	"time"

	"freight/internal/adapters/out/postgres/ledgerrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/history"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
)

func (suite *QueriesTestSuite) TestGetHistory_MergesAllSourcesNewestFirst() {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	carrier, shipper := suite.actor(kernel.Carrier), suite.actor(kernel.Shipper)

	done := suite.addListing(carrier, base.Add(-48*time.Hour))
	suite.Require().NoError(done.Complete(carrier, base))
	suite.Require().NoError(suite.listingRepo.Update(ctx, done))

	open := suite.addListing(carrier, base)
	refused := suite.addRequest(shipper, open, base)
	reason := "too late"
	suite.Require().NoError(refused.Transition(carrier, carrier.ID(), request.Refused, nil, &reason, base.Add(22*time.Hour)))
	suite.Require().NoError(suite.requestRepo.Update(ctx, refused))
	suite.addRequest(suite.actor(kernel.Shipper), open, base)

	suite.Require().NoError(suite.db.Create(&ledgerrepo.RatingDTO{
		ID:          uuid.New(),
		AuthorID:    shipper.ID().Bytes(),
		RatedUserID: carrier.ID().Bytes(),
		Score:       5,
		Comment:     "on time",
		CreatedAt:   base.Add(47 * time.Hour),
	}).Error)
	suite.Require().NoError(suite.db.Create(&ledgerrepo.NotificationDTO{
		ID:        uuid.New(),
		UserID:    carrier.ID().Bytes(),
		Title:     "Payout",
		Message:   "Your payout is ready",
		CreatedAt: base.Add(74 * time.Hour),
	}).Error)
	suite.Require().NoError(suite.db.Create(&ledgerrepo.NotificationDTO{
		ID:        uuid.New(),
		UserID:    shipper.ID().Bytes(),
		Title:     "Someone else's",
		CreatedAt: base.Add(100 * time.Hour),
	}).Error)

	aggregator, err := history.NewAggregator(time.UTC)
	suite.Require().NoError(err)
	query, err := queries.NewGetHistoryQuery(carrier.ID())
	suite.Require().NoError(err)

	feed, err := queries.NewGetHistoryQueryHandler(suite.db, aggregator).Handle(ctx, query)
	suite.Require().NoError(err)

	items := slices.Collect(feed)
	kinds := make([]history.Kind, 0, len(items))
	for _, item := range items {
		kinds = append(kinds, item.Kind)
	}
	suite.Equal([]history.Kind{
		history.KindNotification,
		history.KindRating,
		history.KindDemand,
		history.KindTrip,
	}, kinds)
	suite.Equal("positive", items[1].Status)
	suite.Equal("02/05/2024", items[2].Date)
	suite.Equal("08:00", items[2].Time)
}

func (suite *QueriesTestSuite) TestGetHistory_EmptyUser_ReturnsEmptyFeed() {
	aggregator, err := history.NewAggregator(time.UTC)
	suite.Require().NoError(err)
	query, err := queries.NewGetHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	feed, err := queries.NewGetHistoryQueryHandler(suite.db, aggregator).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(slices.Collect(feed))
}
